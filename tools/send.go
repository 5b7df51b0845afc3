/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tools

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/named-data/udcn/core"
	"github.com/named-data/udcn/face"
	"github.com/named-data/udcn/ndn"
	"github.com/spf13/cobra"
)

// Reply is the response received by Sender.
type Reply struct {
	From net.Addr
	Wire []byte
	// Data is nil when the reply does not decode as a Data packet.
	Data *ndn.Data
}

// Sender expresses one Interest and waits for one reply.
type Sender struct {
	name    string
	target  string
	timeout time.Duration
	out     io.Writer
}

func CmdSend() *cobra.Command {
	s := Sender{out: os.Stdout}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "send",
		Short:   "Send one Interest and wait for the Data reply",
		Args:    cobra.NoArgs,
		Example: `  udcn send --name /example/data --target 127.0.0.1:6363`,
		Run:     s.run,
	}

	cmd.Flags().StringVarP(&s.name, "name", "n", "", "name of the requested content")
	cmd.Flags().StringVarP(&s.target, "target", "t", face.DefaultUDPAddress(), "address of the producer")
	cmd.Flags().DurationVar(&s.timeout, "timeout", 4*time.Second, "time to wait for the reply")
	cmd.MarkFlagRequired("name")
	return cmd
}

func (s *Sender) String() string {
	return "send"
}

func (s *Sender) run(_ *cobra.Command, _ []string) {
	reply, err := s.Send(context.Background(), s.name, s.target)
	if err != nil {
		core.LogFatal(s, "Failed to receive Data response: ", err)
		return
	}
	s.print(reply)
}

// Send expresses an Interest for name to target with a random nonce.
func (s *Sender) Send(ctx context.Context, name string, target string) (*Reply, error) {
	addr, err := net.ResolveUDPAddr("udp", target)
	if err != nil {
		return nil, err
	}

	conn, err := face.ListenUDP(ctx, ":0")
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	interest := ndn.MakeInterest(name)
	if _, err := conn.WriteTo(interest.Encode(), addr); err != nil {
		return nil, err
	}
	core.LogInfo(s, "Sent Interest for '", name, "' to ", target)

	timeout := s.timeout
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	conn.SetReadDeadline(deadline)

	buf := make([]byte, core.MaxFrameSize)
	n, from, err := conn.ReadFrom(buf)
	if err != nil {
		return nil, err
	}

	reply := &Reply{From: from, Wire: buf[:n]}
	if data, ok := ndn.Parse(reply.Wire).(*ndn.Data); ok {
		reply.Data = data
	}
	return reply, nil
}

func (s *Sender) print(reply *Reply) {
	if reply.Data == nil {
		kind := "not an NDN packet"
		if ndn.IsNDNPacket(reply.Wire) {
			kind = "not a Data packet"
		}
		fmt.Fprintf(s.out, "Received %d bytes from %s (%s)\n", len(reply.Wire), reply.From, kind)
		return
	}
	fmt.Fprintf(s.out, "Received Data response (%d bytes) from %s\n", len(reply.Wire), reply.From)
	fmt.Fprintf(s.out, "  name hash: 0x%08x\n", reply.Data.NameHash())
	fmt.Fprintf(s.out, "  signature: 0x%08x\n", reply.Data.Signature())
	fmt.Fprintf(s.out, "  content:   %s\n", reply.Data.Content())
}

/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tools

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/named-data/udcn/core"
	"github.com/named-data/udcn/face"
	"github.com/named-data/udcn/ndn"
	"github.com/spf13/cobra"
)

// Server answers Interests for one name with fixed content.
type Server struct {
	name     string
	content  string
	bind     string
	nameHash uint32

	nRecv atomic.Uint64
	nSent atomic.Uint64
}

func CmdServe() *cobra.Command {
	s := Server{}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "serve",
		Short:   "Serve Data for one name",
		Long: `Serve Data for one name.
Interests for any other name are ignored.`,
		Args:    cobra.NoArgs,
		Example: `  udcn serve --name /example/data --content hello`,
		Run:     s.run,
	}

	cmd.Flags().StringVarP(&s.name, "name", "n", "", "name of the served content")
	cmd.Flags().StringVarP(&s.content, "content", "c", "", "content carried in each Data")
	cmd.Flags().StringVarP(&s.bind, "bind", "b", face.DefaultUDPAddress(), "address to listen on")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("content")
	return cmd
}

// NewServer creates a server for name and content.
func NewServer(name string, content string) (*Server, error) {
	s := &Server{name: name, content: content}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) init() error {
	if _, err := ndn.NewData(0, []byte(s.content), 0); err != nil {
		return fmt.Errorf("invalid content: %w", err)
	}
	s.nameHash = ndn.HashName(s.name)
	return nil
}

func (s *Server) String() string {
	return "serve"
}

func (s *Server) run(_ *cobra.Command, _ []string) {
	if err := s.init(); err != nil {
		core.LogFatal(s, err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := face.ListenUDP(ctx, s.bind)
	if err != nil {
		core.LogFatal(s, "Unable to bind ", s.bind, ": ", err)
		return
	}

	fmt.Printf("Serving content for '%s' on %s\n", s.name, conn.LocalAddr())
	if err := s.Serve(ctx, conn); err != nil {
		core.LogError(s, "Stopped serving: ", err)
	}
	fmt.Printf("\n--- %s server statistics ---\n", s.name)
	fmt.Printf("%d Interests received, %d Data sent\n", s.NRecv(), s.NSent())
}

// Serve answers Interests received on conn until ctx is done. conn is closed on return.
func (s *Server) Serve(ctx context.Context, conn net.PacketConn) error {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	defer conn.Close()

	buf := make([]byte, core.MaxFrameSize)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			core.LogWarn(s, "Failed to receive packet: ", err)
			continue
		}

		var interest *ndn.Interest
		switch p := ndn.Parse(buf[:n]).(type) {
		case *ndn.Interest:
			interest = p
		case *ndn.Data:
			core.LogDebug(s, "Received ", p, " from ", from, " - DROP")
			continue
		case ndn.Other:
			core.LogDebug(s, "Received non-NDN packet from ", from, ": ", p.Err, " - DROP")
			continue
		}
		s.nRecv.Add(1)
		if interest.NameHash() != s.nameHash {
			core.LogDebug(s, "Received ", interest, " for another name - DROP")
			continue
		}

		wire, err := ndn.EncodeData(s.name, []byte(s.content), rand.Uint32())
		if err != nil {
			return err
		}
		if _, err := conn.WriteTo(wire, from); err != nil {
			core.LogWarn(s, "Failed to send Data response: ", err)
			continue
		}
		s.nSent.Add(1)
		core.LogInfo(s, "Sent Data response for '", s.name, "' to ", from)
	}
}

// NRecv returns the number of Interests received.
func (s *Server) NRecv() uint64 {
	return s.nRecv.Load()
}

// NSent returns the number of Data packets sent.
func (s *Server) NSent() uint64 {
	return s.nSent.Load()
}

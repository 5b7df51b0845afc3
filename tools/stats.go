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
	"os"
	"time"

	"github.com/named-data/udcn/core"
	"github.com/named-data/udcn/mgmt"
	"github.com/spf13/cobra"
)

// StatsTool prints the statistics of a running forwarder.
type StatsTool struct {
	server  string
	timeout time.Duration
	out     io.Writer
}

func CmdStats() *cobra.Command {
	st := StatsTool{out: os.Stdout}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "stats",
		Short:   "Print forwarder statistics",
		Args:    cobra.NoArgs,
		Example: `  udcn stats --server ws://127.0.0.1:6364`,
		Run:     st.run,
	}

	defaultServer := mgmt.StatsServerConfig{Bind: "127.0.0.1", Port: mgmt.DefaultStatsPort}
	cmd.Flags().StringVarP(&st.server, "server", "s", defaultServer.URL().String(), "statistics service URL")
	cmd.Flags().DurationVar(&st.timeout, "timeout", 4*time.Second, "time to wait for the service")
	return cmd
}

func (st *StatsTool) String() string {
	return "stats"
}

func (st *StatsTool) run(_ *cobra.Command, _ []string) {
	if err := st.Print(context.Background()); err != nil {
		core.LogFatal(st, "No statistics available: ", err)
	}
}

// Print fetches one status message and writes it out.
func (st *StatsTool) Print(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, st.timeout)
	defer cancel()

	status, err := mgmt.FetchStatus(ctx, st.server)
	if err != nil {
		return err
	}
	fmt.Fprint(st.out, status.String())
	return nil
}

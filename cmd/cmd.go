/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/named-data/udcn/core"
	"github.com/named-data/udcn/executor"
	"github.com/named-data/udcn/tools"
	"github.com/spf13/cobra"
)

const banner = `
        ____   ____ _   _
  _   _|  _ \ / ___| \ | |
 | | | | | | | |   |  \| |
 | |_| | |_| | |___| |\  |
 | ._,_|____/ \____|_| \_|
 |_|

Minimal fast-path NDN forwarder
`

// Version of the forwarder, set at build time.
var Version string

var config = executor.UdcnConfig{}

var CmdUdcn = &cobra.Command{
	Use:     "udcn",
	Short:   "Minimal fast-path NDN forwarder",
	Long:    banner[1:],
	Version: Version,
}

func init() {
	cobra.EnableCommandSorting = false
	CmdUdcn.Root().CompletionOptions.HiddenDefaultCmd = true
	CmdUdcn.PersistentFlags().BoolP("help", "h", false, "Print usage")
	CmdUdcn.PersistentFlags().Lookup("help").Hidden = true
	CmdUdcn.PersistentFlags().StringVarP(&config.Interface, "iface", "i", "udcn0", "network interface to attach to")

	CmdUdcn.AddGroup(&cobra.Group{ID: "daemons", Title: "Forwarder Daemon"})
	CmdUdcn.AddCommand(cmdRun())

	CmdUdcn.AddGroup(&cobra.Group{ID: "tools", Title: "Control Tools"})
	CmdUdcn.AddCommand(tools.CmdSend())
	CmdUdcn.AddCommand(tools.CmdServe())
	CmdUdcn.AddCommand(tools.CmdStats())
}

func cmdRun() *cobra.Command {
	var statsInterval uint

	cmd := &cobra.Command{
		GroupID: "daemons",
		Use:     "run [CONFIG-FILE]",
		Short:   "Attach the fast path to an interface",
		Long: `Attach the fast path to an interface and run until interrupted.
The configuration file may be TOML or YAML.`,
		Args:    cobra.MaximumNArgs(1),
		Example: `  udcn --iface eth0 run --stats-interval 5 udcn.toml`,
		Run: func(cmd *cobra.Command, args []string) {
			// faces.ingress.interface applies unless --iface is given
			if !cmd.Root().PersistentFlags().Changed("iface") {
				config.Interface = ""
			}
			if len(args) > 0 {
				config.ConfigFileName = args[0]
			}
			config.Version = Version
			config.StatsInterval = time.Duration(statsInterval) * time.Second
			run(&config)
		},
	}

	cmd.Flags().UintVar(&statsInterval, "stats-interval", 0, "print statistics every N seconds (0 to disable)")
	cmd.Flags().StringVar(&config.LogFile, "log-file", "", "write logs to file instead of stdout")
	cmd.Flags().StringVar(&config.CpuProfile, "cpu-profile", "", "Write CPU profile to file")
	cmd.Flags().StringVar(&config.MemProfile, "mem-profile", "", "Write memory profile to file")
	cmd.Flags().StringVar(&config.BlockProfile, "block-profile", "", "Write block profile to file")
	return cmd
}

func run(config *executor.UdcnConfig) {
	udcn, err := executor.NewUdcn(config)
	if err != nil {
		core.LogFatal("Main", "Unable to load configuration: ", err)
		return
	}
	if err := udcn.Start(); err != nil {
		core.LogFatal("Main", err)
		return
	}
	core.LogInfo("Main", "µDCN daemon running. Press Ctrl-C to exit...")

	// set up signal handler channel and wait for interrupt
	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM)
	receivedSig := <-sigChannel
	core.LogInfo("Main", "Received signal ", receivedSig, " - exiting")

	udcn.Stop()
}

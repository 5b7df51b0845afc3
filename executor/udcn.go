/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package executor

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/named-data/udcn/core"
	"github.com/named-data/udcn/face"
	"github.com/named-data/udcn/fw"
	"github.com/named-data/udcn/mgmt"
	"github.com/named-data/udcn/table"
)

// UdcnConfig is the configuration of the forwarder daemon.
type UdcnConfig struct {
	Version        string
	ConfigFileName string
	LogFile        string
	// Interface overrides faces.ingress.interface when not empty.
	Interface string
	// StatsInterval is the period of the statistics printout. Zero disables it.
	StatsInterval time.Duration
	CpuProfile    string
	MemProfile    string
	BlockProfile  string
}

// Udcn is the wrapper class for the forwarder daemon.
// Note: only one instance of this class should be created.
type Udcn struct {
	config   *UdcnConfig
	profiler *Profiler

	newForwarder func() (*fw.Forwarder, error)

	// Out receives the periodic statistics printout.
	Out io.Writer

	forwarder   *fw.Forwarder
	transport   *face.IngressTransport
	dispatcher  *face.Dispatcher
	statsServer *mgmt.StatsServer

	stopTicker chan struct{}
	tickerDone chan struct{}
}

// NewUdcn creates the daemon and loads its configuration.
func NewUdcn(config *UdcnConfig) (*Udcn, error) {
	core.Version = config.Version
	core.StartTimestamp = time.Now()

	if err := core.LoadConfig(config.ConfigFileName); err != nil {
		return nil, err
	}
	if err := core.InitializeLogger(config.LogFile); err != nil {
		return nil, err
	}
	table.Configure()
	face.Configure()
	mgmt.Configure()

	if config.Interface != "" {
		face.IngressInterface = config.Interface
	}

	return &Udcn{
		config:   config,
		profiler: NewProfiler(config),
		Out:      os.Stdout,

		newForwarder: fw.NewForwarderFromConfig,
	}, nil
}

// Start attaches the fast path to the configured interface.
// This function is non-blocking.
func (u *Udcn) Start() error {
	transport, err := face.OpenIngressTransport(face.IngressInterface, face.IngressMode)
	if err != nil {
		return fmt.Errorf("unable to attach to %s: %w", face.IngressInterface, err)
	}
	if err := u.StartWithTransport(transport); err != nil {
		transport.Close()
		return err
	}
	return nil
}

// StartWithTransport runs the fast path over an already opened transport.
func (u *Udcn) StartWithTransport(transport *face.IngressTransport) error {
	core.LogInfo("Main", "Starting µDCN on ", face.IngressInterface)

	if err := u.profiler.Start(); err != nil {
		return err
	}

	forwarder, err := u.newForwarder()
	if err != nil {
		u.profiler.Stop()
		return fmt.Errorf("unable to create forwarder: %w", err)
	}
	u.forwarder = forwarder
	u.transport = transport

	u.dispatcher = face.NewDispatcher(forwarder, transport, face.IngressFaceID,
		face.IngressQueues(), face.IngressQueueSize())
	u.dispatcher.Start()
	go transport.RunReceive(u.dispatcher.Enqueue)
	core.LogInfo("Main", "Attached ", transport)

	if mgmt.StatsEnabled() {
		u.statsServer = mgmt.NewStatsServer(mgmt.ConfiguredStatsServer(), forwarder, u.dispatcher)
		if err := u.statsServer.Listen(); err != nil {
			core.LogWarn("Main", "Unable to start statistics service: ", err)
			u.statsServer = nil
		} else {
			go u.statsServer.Run()
			core.LogInfo("Main", "Serving statistics at ", u.statsServer.URL())
		}
	}

	if u.config.StatsInterval > 0 {
		u.stopTicker = make(chan struct{})
		u.tickerDone = make(chan struct{})
		go u.printStats(u.config.StatsInterval)
	}
	return nil
}

// Forwarder returns the running forwarder, or nil before Start.
func (u *Udcn) Forwarder() *fw.Forwarder {
	return u.forwarder
}

func (u *Udcn) printStats(interval time.Duration) {
	defer close(u.tickerDone)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fmt.Fprint(u.Out, mgmt.MakeStatus(u.forwarder, u.dispatcher).String())
		case <-u.stopTicker:
			return
		}
	}
}

// Stop detaches the fast path and releases its tables.
func (u *Udcn) Stop() {
	core.LogInfo("Main", "Stopping µDCN")

	if u.stopTicker != nil {
		close(u.stopTicker)
		<-u.tickerDone
	}

	if u.statsServer != nil {
		u.statsServer.Close()
		<-u.statsServer.HasQuit
	}

	if u.transport != nil {
		u.transport.Close()
		<-u.transport.HasQuit
	}

	if u.dispatcher != nil {
		u.dispatcher.Stop()
		core.LogInfo("Main", "Verdicts: ", u.dispatcher.Summary())
	}

	if u.forwarder != nil {
		fmt.Fprint(u.Out, mgmt.MakeStatus(u.forwarder, u.dispatcher).String())
		if err := u.forwarder.Close(); err != nil {
			core.LogWarn("Main", "Unable to release payload cache: ", err)
		}
	}

	u.profiler.Stop()
	core.LogInfo("Main", "Stopped µDCN")
	core.ShutdownLogger()
}

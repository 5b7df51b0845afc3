/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/named-data/udcn/core"
	"github.com/named-data/udcn/fw"
)

// StatsServerConfig contains StatsServer configuration.
type StatsServerConfig struct {
	Bind string
	Port uint16
}

// URL returns the WebSocket URL of the statistics service.
func (cfg StatsServerConfig) URL() *url.URL {
	return &url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort(cfg.Bind, strconv.FormatUint(uint64(cfg.Port), 10)),
	}
}

func (cfg StatsServerConfig) String() string {
	return fmt.Sprintf("statistics service at %s", cfg.URL())
}

// StatsServer serves the forwarder status over WebSocket. A client receives one status message
// on connect and one more for every message it sends.
type StatsServer struct {
	cfg       StatsServerConfig
	server    http.Server
	upgrader  websocket.Upgrader
	listener  net.Listener
	forwarder *fw.Forwarder
	verdicts  VerdictSource
	HasQuit   chan bool
}

// NewStatsServer creates a statistics service for forwarder. verdicts may be nil.
func NewStatsServer(cfg StatsServerConfig, forwarder *fw.Forwarder, verdicts VerdictSource) *StatsServer {
	s := &StatsServer{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			WriteBufferPool: &sync.Pool{},
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		forwarder: forwarder,
		verdicts:  verdicts,
		HasQuit:   make(chan bool, 1),
	}
	s.server.Handler = http.HandlerFunc(s.handler)
	return s
}

func (s *StatsServer) String() string {
	return "StatsServer, " + s.cfg.URL().String()
}

// Listen binds the service address.
func (s *StatsServer) Listen() error {
	listener, err := net.Listen("tcp", s.cfg.URL().Host)
	if err != nil {
		return err
	}
	s.listener = listener
	return nil
}

// Addr returns the bound address, once Listen succeeded.
func (s *StatsServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// URL returns the WebSocket URL of the bound service.
func (s *StatsServer) URL() string {
	if s.listener == nil {
		return s.cfg.URL().String()
	}
	return (&url.URL{Scheme: "ws", Host: s.listener.Addr().String()}).String()
}

// Run serves clients until Close is called.
func (s *StatsServer) Run() {
	defer func() { s.HasQuit <- true }()
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			core.LogError(s, "Unable to start statistics service: ", err)
			return
		}
	}

	err := s.server.Serve(s.listener)
	if !errors.Is(err, http.ErrServerClosed) {
		core.LogError(s, "Statistics service stopped: ", err)
	}
}

func (s *StatsServer) handler(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer c.Close()
	core.LogDebug(s, "Accepting statistics client ", c.RemoteAddr())

	for {
		if err := c.WriteJSON(MakeStatus(s.forwarder, s.verdicts)); err != nil {
			return
		}
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// Close stops the service.
func (s *StatsServer) Close() {
	core.LogInfo(s, "Stopping statistics service")
	s.server.Shutdown(context.TODO())
}

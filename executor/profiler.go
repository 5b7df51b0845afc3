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
	"runtime"
	"runtime/pprof"

	"github.com/named-data/udcn/core"
)

// Profiler writes the profiles requested in a UdcnConfig.
type Profiler struct {
	config  *UdcnConfig
	cpuFile *os.File
	block   *pprof.Profile
}

func NewProfiler(config *UdcnConfig) *Profiler {
	return &Profiler{config: config}
}

// Start begins CPU and block profiling. The memory profile is written by Stop.
func (p *Profiler) Start() error {
	if p.config.CpuProfile != "" {
		cpuFile, err := os.Create(p.config.CpuProfile)
		if err != nil {
			return fmt.Errorf("unable to open output file for CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			cpuFile.Close()
			return err
		}
		p.cpuFile = cpuFile
		core.LogInfo("Main", "Profiling CPU - outputting to ", p.config.CpuProfile)
	}

	if p.config.BlockProfile != "" {
		core.LogInfo("Main", "Profiling blocking operations - outputting to ", p.config.BlockProfile)
		runtime.SetBlockProfileRate(1)
		p.block = pprof.Lookup("block")
	}

	return nil
}

// Stop flushes every started profile.
func (p *Profiler) Stop() {
	if p.block != nil {
		if err := writeProfile(p.config.BlockProfile, func(w io.Writer) error { return p.block.WriteTo(w, 0) }); err != nil {
			core.LogError("Main", "Unable to write block profile: ", err)
		}
		runtime.SetBlockProfileRate(0)
		p.block = nil
	}

	if p.config.MemProfile != "" {
		core.LogInfo("Main", "Profiling memory - outputting to ", p.config.MemProfile)
		runtime.GC()
		if err := writeProfile(p.config.MemProfile, pprof.WriteHeapProfile); err != nil {
			core.LogError("Main", "Unable to write memory profile: ", err)
		}
	}

	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		p.cpuFile.Close()
		p.cpuFile = nil
	}
}

func writeProfile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

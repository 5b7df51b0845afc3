/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/named-data/udcn/core"
)

// Ingress attachment modes.
const (
	ModePcap     = "pcap"
	ModeAFPacket = "afpacket"
)

// MaxIngressQueues is the maximum number of receive queues.
const MaxIngressQueues = 32

// IngressInterface is the network interface the fast path attaches to.
var IngressInterface = "udcn0"

// IngressMode selects how frames are captured from IngressInterface.
var IngressMode = ModePcap

// IngressFaceID is recorded in PIT entries created from frames on IngressInterface.
var IngressFaceID uint32 = 1

// ingressBPFFilter optionally restricts the frames handed to the fast path.
var ingressBPFFilter string

// ingressQueues is the number of receive queues.
var ingressQueues = 4

// ingressQueueSize is the maximum number of frames buffered per receive queue.
var ingressQueueSize = 1024

// Configure configures the face system.
func Configure() {
	IngressInterface = core.GetConfigStringDefault("faces.ingress.interface", "udcn0")
	IngressMode = core.GetConfigStringDefault("faces.ingress.mode", ModePcap)
	IngressFaceID = uint32(core.GetConfigIntDefault("faces.ingress.face_id", 1))
	ingressBPFFilter = core.GetConfigStringDefault("faces.ingress.bpf_filter", "")
	ingressQueues = core.GetConfigIntDefault("faces.ingress.queues", 4)
	ingressQueueSize = core.GetConfigIntDefault("faces.ingress.queue_size", 1024)

	if ingressQueues < 1 || ingressQueues > MaxIngressQueues {
		core.LogFatal("Face", "Number of ingress queues must be in range [1, ", MaxIngressQueues, "]")
	}
	if ingressQueueSize < 1 {
		core.LogFatal("Face", "Ingress queue size must be positive")
	}
	if IngressMode != ModePcap && IngressMode != ModeAFPacket {
		core.LogFatal("Face", "Unknown ingress mode ", IngressMode)
	}
}

// IngressQueues returns the configured number of receive queues.
func IngressQueues() int {
	return ingressQueues
}

// IngressQueueSize returns the configured receive queue length.
func IngressQueueSize() int {
	return ingressQueueSize
}

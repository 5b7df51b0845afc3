/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/named-data/udcn/core"
	"github.com/named-data/udcn/face/impl"
	"github.com/named-data/udcn/fw"
	"github.com/named-data/udcn/table"
)

// Hook is the ingress interception point. It is invoked once per received frame and must not
// block.
type Hook interface {
	Process(frame fw.Frame, faceID uint32) (fw.Result, error)
}

// FrameSender transmits frames back out of the interface.
type FrameSender interface {
	SendFrame(frame []byte) error
}

// Bytes of an Ethernet/IPv4 frame covering the IPv4 addresses and the UDP ports.
const (
	flowKeyStart = fw.EthernetHeaderSize + 12
	flowKeyEnd   = fw.EthernetHeaderSize + 20 + 4
)

// Measurement keys.
const (
	MeasurementPass          = "verdict.pass"
	MeasurementDrop          = "verdict.drop"
	MeasurementReply         = "verdict.reply"
	MeasurementAbort         = "verdict.abort"
	MeasurementQueueOverflow = "queue.overflow"
	MeasurementReplySent     = "reply.sent"
	MeasurementReplyFailed   = "reply.failed"
)

// latencySuffix ends the keys of per-queue processing latency averages, in nanoseconds.
const latencySuffix = ".latency_ns"

// latencyAlpha is the weight of each new sample in the latency averages.
const latencyAlpha = 0.125

var verdictKeys = map[fw.Action]string{
	fw.Pass:  MeasurementPass,
	fw.Drop:  MeasurementDrop,
	fw.Reply: MeasurementReply,
	fw.Abort: MeasurementAbort,
}

// Dispatcher runs the ingress hook over frames spread across a fixed number of receive queues.
// Frames of one flow always land on the same queue.
type Dispatcher struct {
	hook         Hook
	sender       FrameSender
	faceID       uint32
	queues       []chan []byte
	Measurements *table.Measurements

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewDispatcher creates a dispatcher with nQueues receive queues of queueSize frames each.
// sender may be nil, in which case Reply verdicts are not transmitted.
func NewDispatcher(hook Hook, sender FrameSender, faceID uint32, nQueues int, queueSize int) *Dispatcher {
	d := &Dispatcher{
		hook:         hook,
		sender:       sender,
		faceID:       faceID,
		queues:       make([]chan []byte, nQueues),
		Measurements: table.NewMeasurements(),
	}
	for i := range d.queues {
		d.queues[i] = make(chan []byte, queueSize)
	}
	return d
}

func (d *Dispatcher) String() string {
	return "Dispatcher, FaceID=" + strconv.FormatUint(uint64(d.faceID), 10)
}

// Start launches one worker per receive queue.
func (d *Dispatcher) Start() {
	for i := range d.queues {
		d.wg.Add(1)
		go d.runQueue(i)
	}
	core.LogInfo(d, "Started ", len(d.queues), " receive queues")
}

// Stop closes the receive queues and waits for pending frames to be processed.
// Enqueue must not be called afterwards.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		for _, queue := range d.queues {
			close(queue)
		}
	})
	d.wg.Wait()
}

// QueueFor returns the receive queue a frame is steered to.
func (d *Dispatcher) QueueFor(frame []byte) int {
	if len(d.queues) == 1 || len(frame) <= flowKeyStart {
		return 0
	}
	end := flowKeyEnd
	if len(frame) < end {
		end = len(frame)
	}
	return int(xxhash.Sum64(frame[flowKeyStart:end]) % uint64(len(d.queues)))
}

// Enqueue steers a frame to its receive queue. If the queue is full, the frame is handed to the
// regular stack untouched and counted as an overflow.
func (d *Dispatcher) Enqueue(frame []byte) {
	queue := d.QueueFor(frame)
	select {
	case d.queues[queue] <- frame:
	default:
		d.Measurements.Add(MeasurementQueueOverflow, 1)
	}
}

func (d *Dispatcher) runQueue(queue int) {
	defer d.wg.Done()
	prefix := "queue." + strconv.Itoa(queue)
	framesKey := prefix + ".frames"
	latencyKey := prefix + latencySuffix
	for frame := range d.queues[queue] {
		d.Measurements.Add(framesKey, 1)
		start := time.Now()
		d.HandleFrame(frame)
		d.Measurements.AddSampleToEWMA(latencyKey, float64(time.Since(start).Nanoseconds()), latencyAlpha)
	}
}

// HandleFrame runs the hook over one frame and acts on its verdict. A hook error or panic
// becomes Abort.
func (d *Dispatcher) HandleFrame(data []byte) (action fw.Action) {
	defer func() {
		if r := recover(); r != nil {
			core.LogError(d, "Fast path panicked - ABORT: ", r)
			action = fw.Abort
			d.Measurements.Add(MeasurementAbort, 1)
		}
	}()

	result, err := d.hook.Process(fw.MakeFrame(data), d.faceID)
	if err != nil {
		core.LogError(d, "Fast path fault - ABORT: ", err)
		result.Action = fw.Abort
	}
	d.Measurements.Add(verdictKeys[result.Action], 1)

	if result.Action == fw.Reply {
		d.sendReply(data, result.Reply)
	}
	return result.Action
}

func (d *Dispatcher) sendReply(request []byte, payload []byte) {
	if d.sender == nil {
		return
	}
	frame, err := impl.BuildReplyFrame(request, payload)
	if err == nil {
		err = d.sender.SendFrame(frame)
	}
	if err != nil {
		d.Measurements.Add(MeasurementReplyFailed, 1)
		core.LogWarn(d, "Unable to send reply: ", err)
		return
	}
	d.Measurements.Add(MeasurementReplySent, 1)
}

// Verdicts returns every frame counter: per verdict, per queue, overflows and replies.
// Verdicts that never occurred are reported as 0.
func (d *Dispatcher) Verdicts() map[string]uint64 {
	verdicts := d.Measurements.Snapshot()
	for _, key := range verdictKeys {
		if _, ok := verdicts[key]; !ok {
			verdicts[key] = 0
		}
	}
	return verdicts
}

// Latencies returns the average processing time of each receive queue, in nanoseconds.
func (d *Dispatcher) Latencies() map[string]float64 {
	latencies := make(map[string]float64)
	for _, key := range d.Measurements.Keys() {
		if !strings.HasSuffix(key, latencySuffix) {
			continue
		}
		if value, ok := d.Measurements.Get(key).(float64); ok {
			latencies[key] = value
		}
	}
	return latencies
}

// Summary returns a one-line summary of the verdict counts.
func (d *Dispatcher) Summary() string {
	return fmt.Sprintf("pass=%d drop=%d reply=%d abort=%d overflow=%d",
		d.Measurements.GetUint64(MeasurementPass),
		d.Measurements.GetUint64(MeasurementDrop),
		d.Measurements.GetUint64(MeasurementReply),
		d.Measurements.GetUint64(MeasurementAbort),
		d.Measurements.GetUint64(MeasurementQueueOverflow))
}

// Copyright 2016 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

// Package net adapts the flshm region/message/registry protocol to the
// shape of net.Conn/net.Listener. The protocol underneath has no stream and
// no queue — one overwritable message slot, polled rather than blocking —
// so Write sends exactly one message and Read polls for the next tick
// change rather than faking a continuous byte stream.
package net

import (
	"io"
	"net"
	"time"

	"github.com/tmthrgd-flshm/flshm"
)

// pollInterval is how often Read polls PeekTick while waiting for a new
// message. The underlying protocol offers no blocking wait primitive for
// the message slot (only the region lock blocks), so Read backs off on a
// timer instead; no cancellation or timeout is offered.
const pollInterval = 10 * time.Millisecond

// Conn is a net.Conn-shaped wrapper around one named LocalConnection
// endpoint. Write sends a single message; Read waits for and returns the
// next message's payload. There is no queueing: a message written before
// the previous one was read is simply overwritten, matching the region's
// single-slot semantics.
type Conn struct {
	region *flshm.Region
	name   string
	host   string
	closed bool

	lastTick uint32
}

// Close releases the connection's in-process resources. It does not remove
// the name from the registry: a name registered via Dial stays until the
// caller calls RemoveConnection, and one registered via Listen is removed
// by Listener.Close, matching
// flshm_connection_remove's independence from flshm_close in flshm.h.
func (c *Conn) Close() error {
	c.closed = true
	return nil
}

func (c *Conn) Read(p []byte) (n int, err error) {
	if c.closed {
		return 0, net.ErrClosed
	}
	for {
		tick, err := c.region.PeekTick()
		if err != nil {
			return 0, err
		}
		if tick != 0 && tick != c.lastTick {
			break
		}
		time.Sleep(pollInterval)
	}

	msg, err := c.region.ReadMessage()
	if err != nil {
		return 0, err
	}
	if msg == nil {
		return 0, io.ErrNoProgress
	}

	c.lastTick = msg.Tick
	return copy(p, msg.Data), nil
}

func (c *Conn) Write(p []byte) (n int, err error) {
	if c.closed {
		return 0, net.ErrClosed
	}
	tick := flshm.Tick()
	for tick == 0 {
		tick = flshm.Tick()
	}

	msg := &flshm.Message{
		Tick:    tick,
		Name:    c.name,
		Host:    c.host,
		Version: flshm.Version4,
		Method:  "send",
		Data:    p,
	}
	if err := c.region.WriteMessage(msg); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *Conn) LocalAddr() net.Addr {
	return addr(c.name)
}

func (c *Conn) RemoteAddr() net.Addr {
	return addr(c.name)
}

func (c *Conn) SetDeadline(t time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(t time.Time) error {
	return nil
}

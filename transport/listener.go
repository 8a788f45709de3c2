// Copyright 2016 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

package net

import (
	"fmt"
	"net"

	"github.com/tmthrgd-flshm/flshm"
)

// Listener registers a connection name in the shared registry and hands out
// a single Conn bound to that name on the first Accept call. Unlike a
// stream listener it does not accept multiple simultaneous peers: the
// underlying protocol has one message slot per region, not one per client.
type Listener struct {
	region *flshm.Region
	conn   Connection

	accepted bool
}

// Connection describes the registry entry a Listener publishes.
type Connection struct {
	Name    string
	Host    string
	Version flshm.Version
	Sandbox flshm.Sandbox
}

// Listen registers conn in region's connection registry and returns a
// Listener that will hand out a Conn bound to conn.Name on its first
// Accept. It fails exactly as Region.AddConnection does, including
// ErrFull once eight names are already registered and ErrInvalidName for a
// duplicate or malformed name.
func Listen(region *flshm.Region, conn Connection) (*Listener, error) {
	c := flshm.Connection{Name: conn.Name, Version: conn.Version, Sandbox: conn.Sandbox}
	if err := region.AddConnection(c); err != nil {
		return nil, fmt.Errorf("flshm: listen %q: %w", conn.Name, err)
	}
	return &Listener{region: region, conn: conn}, nil
}

// Accept returns the Listener's bound Conn. It may only be called once;
// subsequent calls return an error, since a single region message slot
// cannot serve more than one accepted peer at a time.
func (l *Listener) Accept() (net.Conn, error) {
	if l.accepted {
		return nil, fmt.Errorf("flshm: listener %q already accepted", l.conn.Name)
	}
	l.accepted = true
	return &Conn{region: l.region, name: l.conn.Name, host: l.conn.Host}, nil
}

// Close removes the listener's name from the registry.
func (l *Listener) Close() error {
	c := flshm.Connection{Name: l.conn.Name, Version: l.conn.Version, Sandbox: l.conn.Sandbox}
	return l.region.RemoveConnection(c)
}

func (l *Listener) Addr() net.Addr {
	return addr(l.conn.Name)
}

// Copyright 2016 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

package net

import (
	"errors"
	"net"

	"github.com/tmthrgd-flshm/flshm"
)

// Dialer registers conn in a region's registry. Dial's network argument must
// be "flshm"; any other value is rejected.
type Dialer struct {
	region *flshm.Region
	conn   Connection
}

// NewDialer builds a Dialer bound to region, registering no name itself;
// callers obtain one already pointed at a registered peer by calling Dial.
func NewDialer(region *flshm.Region, conn Connection) *Dialer {
	return &Dialer{region: region, conn: conn}
}

// Dial registers d's connection and returns a Conn bound to it. network
// must be "flshm" and address must equal d's connection name.
func (d *Dialer) Dial(network, address string) (net.Conn, error) {
	if network != "flshm" {
		return nil, errors.New("flshm: unrecognised network")
	}
	if address != d.conn.Name {
		return nil, errors.New("flshm: invalid address")
	}

	c := flshm.Connection{Name: d.conn.Name, Version: d.conn.Version, Sandbox: d.conn.Sandbox}
	if err := d.region.AddConnection(c); err != nil {
		return nil, err
	}

	return &Conn{region: d.region, name: d.conn.Name, host: d.conn.Host}, nil
}

// Dial is a convenience wrapper equivalent to NewDialer(region,
// conn).Dial("flshm", conn.Name).
func Dial(region *flshm.Region, conn Connection) (net.Conn, error) {
	return NewDialer(region, conn).Dial("flshm", conn.Name)
}

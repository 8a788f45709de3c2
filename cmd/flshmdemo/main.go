// Copyright 2016 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

// Command flshmdemo is an interactive client/server exercising the
// transport package's Dial/Listen/Accept wrapper around a region. A server
// registers a name and echoes lines back to any client that writes to it;
// a client dials under its own name, which must differ from the server's
// (Dial registers the name and fails if it is already registered), and
// reads a line at a time from the terminal.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/tmthrgd-flshm/flshm"
	"github.com/tmthrgd-flshm/flshm/internal/democonfig"
	flshmnet "github.com/tmthrgd-flshm/flshm/transport"
)

func must(name string, err error) {
	if err != nil {
		panic(fmt.Sprintf("%s failed with err: %v\n", name, err))
	}
}

func should(name string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed with err: %v\n", name, err)
	}
}

func main() {
	var role string
	flag.StringVar(&role, "role", "server", "server/client")

	var name string
	flag.StringVar(&name, "name", "flshmdemo", "registry connection name")

	var configPath string
	flag.StringVar(&configPath, "config", "", "optional TOML config file overriding -name and connection metadata")

	var perUser bool
	flag.BoolVar(&perUser, "peruser", false, "open the per-user region instead of the global one")

	flag.Parse()

	switch role {
	case "server", "client":
	default:
		flag.PrintDefaults()
		return
	}

	conn := flshmnet.Connection{
		Name:    name,
		Version: flshm.Version4,
		Sandbox: flshm.SandboxLocalTrusted,
	}

	if configPath != "" {
		cfg, err := democonfig.Load(configPath)
		must("democonfig.Load", err)

		conn.Name = cfg.Connection.Name
		conn.Host = cfg.Connection.Host
		conn.Version = flshm.Version(cfg.Connection.Version)
		conn.Sandbox = flshm.Sandbox(cfg.Connection.Sandbox)
		perUser = cfg.Connection.PerUser
	}

	region, err := flshm.Open(perUser)
	must("flshm.Open", err)
	defer region.Close()

	isServer := role == "server"

	done := make(chan struct{})

	if isServer {
		ln, err := flshmnet.Listen(region, conn)
		must("flshmnet.Listen", err)
		defer func() { should("Listener.Close", ln.Close()) }()

		go func() {
			c, err := ln.Accept()
			must("ln.Accept", err)

			buf := make([]byte, flshm.MessageMaxSize)
			for {
				n, err := c.Read(buf)
				must("c.Read", err)

				fmt.Printf("< %s", buf[:n])

				if _, err := c.Write(buf[:n]); err != nil {
					must("c.Write", err)
				}
			}
		}()
	} else {
		c, err := flshmnet.Dial(region, conn)
		must("flshmnet.Dial", err)
		defer func() { should("Conn.Close", c.Close()) }()

		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				line := scanner.Text() + "\n"
				if _, err := c.Write([]byte(line)); err != nil {
					must("c.Write", err)
				}
			}
			close(done)
		}()

		go func() {
			buf := make([]byte, flshm.MessageMaxSize)
			for {
				n, err := c.Read(buf)
				if err != nil {
					must("c.Read", err)
				}
				fmt.Printf("> %s", buf[:n])
			}
		}()
	}

	// http://stackoverflow.com/a/18158859
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, unix.SIGTERM)

	select {
	case <-sig:
	case <-done:
	}
}

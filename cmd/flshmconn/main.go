// Copyright 2016 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

// Command flshmconn lists, adds and removes entries in the LocalConnection
// region's connection registry, and offers an interactive mode for
// exercising the registry from a terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/tmthrgd-flshm/flshm"
)

func must(name string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed with err: %v\n", name, err)
		os.Exit(1)
	}
}

func should(name string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed with err: %v\n", name, err)
	}
}

func main() {
	var perUser bool
	flag.BoolVar(&perUser, "peruser", false, "open the per-user region instead of the global one")

	var interactive bool
	flag.BoolVar(&interactive, "i", false, "run an interactive registry shell")

	flag.Parse()

	region, err := flshm.Open(perUser)
	must("flshm.Open", err)
	defer region.Close()

	if interactive {
		runInteractive(region)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		listConnections(region)
		return
	}

	switch args[0] {
	case "list":
		listConnections(region)
	case "add":
		if len(args) != 4 {
			fmt.Fprintln(os.Stderr, "usage: flshmconn add name version sandbox")
			os.Exit(2)
		}
		addConnection(region, args[1], args[2], args[3])
	case "remove":
		if len(args) != 4 {
			fmt.Fprintln(os.Stderr, "usage: flshmconn remove name version sandbox")
			os.Exit(2)
		}
		removeConnection(region, args[1], args[2], args[3])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		os.Exit(2)
	}
}

func listConnections(region *flshm.Region) {
	conns, err := region.ListConnections()
	must("ListConnections", err)
	for _, c := range conns {
		fmt.Println(c)
	}
}

func parseConn(name, versionStr, sandboxStr string) (flshm.Connection, error) {
	version, err := strconv.ParseUint(versionStr, 10, 8)
	if err != nil {
		return flshm.Connection{}, fmt.Errorf("version: %w", err)
	}
	sandbox, err := strconv.ParseInt(sandboxStr, 10, 8)
	if err != nil {
		return flshm.Connection{}, fmt.Errorf("sandbox: %w", err)
	}
	return flshm.Connection{Name: name, Version: flshm.Version(version), Sandbox: flshm.Sandbox(sandbox)}, nil
}

func addConnection(region *flshm.Region, name, versionStr, sandboxStr string) {
	conn, err := parseConn(name, versionStr, sandboxStr)
	must("parseConn", err)
	should("AddConnection", region.AddConnection(conn))
}

func removeConnection(region *flshm.Region, name, versionStr, sandboxStr string) {
	conn, err := parseConn(name, versionStr, sandboxStr)
	must("parseConn", err)
	should("RemoveConnection", region.RemoveConnection(conn))
}

// runInteractive opens a line-oriented shell over the registry: each line
// is "list", "add name version sandbox" or "remove name version sandbox".
func runInteractive(region *flshm.Region) {
	oldState, err := terminal.MakeRaw(0)
	must("terminal.MakeRaw", err)
	defer terminal.Restore(0, oldState)

	term := terminal.NewTerminal(os.Stdin, "flshmconn> ")

	for {
		line, err := term.ReadLine()
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "q":
			return
		case "list":
			conns, err := region.ListConnections()
			should("ListConnections", err)
			for _, c := range conns {
				fmt.Fprintln(term, c)
			}
		case "add":
			if len(fields) != 4 {
				fmt.Fprintln(term, "usage: add name version sandbox")
				continue
			}
			conn, err := parseConn(fields[1], fields[2], fields[3])
			if err != nil {
				fmt.Fprintln(term, err)
				continue
			}
			should("AddConnection", region.AddConnection(conn))
		case "remove":
			if len(fields) != 4 {
				fmt.Fprintln(term, "usage: remove name version sandbox")
				continue
			}
			conn, err := parseConn(fields[1], fields[2], fields[3])
			if err != nil {
				fmt.Fprintln(term, err)
				continue
			}
			should("RemoveConnection", region.RemoveConnection(conn))
		default:
			fmt.Fprintf(term, "unknown command: %s\n", fields[0])
		}
	}
}

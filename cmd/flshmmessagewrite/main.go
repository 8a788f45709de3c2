// Copyright 2016 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

// Command flshmmessagewrite writes one message into the LocalConnection
// region's message slot, taking its arguments positionally in the order
// flshmmessagewrite.c takes them: tick name host version sandboxed https
// sandbox swfv filepath amfv method size data.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/tmthrgd-flshm/flshm"
)

func must(name string, err error) {
	if err != nil {
		fmt.Printf("%s failed with err: %v\n", name, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("usage: %s [-peruser] tick name host version sandboxed https sandbox swfv filepath amfv method size [data]\n", os.Args[0])
	os.Exit(2)
}

func main() {
	var perUser bool
	flag.BoolVar(&perUser, "peruser", false, "open the per-user region instead of the global one")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 12 {
		usage()
	}

	tick, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || tick == 0 {
		fmt.Printf("ERROR: tick: %s\n", args[0])
		os.Exit(1)
	}

	name := args[1]
	host := args[2]

	version, err := strconv.ParseUint(args[3], 10, 8)
	must("version", err)

	sandboxed := args[4] != "0"
	https := args[5] != "0"

	sandbox, err := strconv.ParseInt(args[6], 10, 8)
	if err != nil {
		fmt.Printf("ERROR: sandbox: %s\n", args[6])
		os.Exit(1)
	}

	swfv, err := strconv.ParseUint(args[7], 10, 32)
	if err != nil {
		fmt.Printf("ERROR: swfv: %s\n", args[7])
		os.Exit(1)
	}

	filepath := args[8]

	amfv, err := strconv.ParseUint(args[9], 10, 8)
	if err != nil {
		fmt.Printf("ERROR: amfv: %s\n", args[9])
		os.Exit(1)
	}

	method := args[10]

	size, err := strconv.ParseUint(args[11], 10, 32)
	if err != nil {
		fmt.Printf("ERROR: size: %s\n", args[11])
		os.Exit(1)
	}

	var data []byte
	if len(args) > 12 {
		data, err = hex.DecodeString(args[12])
		must("hex.DecodeString", err)
	}
	if uint64(len(data)) != size {
		fmt.Printf("ERROR: size: %s, but data is %d bytes\n", args[11], len(data))
		os.Exit(1)
	}

	msg := &flshm.Message{
		Tick:       uint32(tick),
		Name:       name,
		Host:       host,
		Version:    flshm.Version(version),
		Sandboxed:  sandboxed,
		HTTPS:      https,
		Sandbox:    flshm.Sandbox(sandbox),
		SWFVersion: uint32(swfv),
		Filepath:   filepath,
		AMFVersion: flshm.AMF(amfv),
		Method:     method,
		Data:       data,
	}

	region, err := flshm.Open(perUser)
	if err != nil {
		fmt.Println("FAILED: flshm.Open")
		os.Exit(1)
	}
	defer region.Close()

	if err := region.WriteMessage(msg); err != nil {
		fmt.Printf("FAILED: WriteMessage: %v\n", err)
		os.Exit(1)
	}
}

// Copyright 2016 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

// Command flshmmessagetick prints the region's current message tick,
// mirroring flshmmessagetick.c.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tmthrgd-flshm/flshm"
)

func main() {
	var perUser bool
	flag.BoolVar(&perUser, "peruser", false, "open the per-user region instead of the global one")
	flag.Parse()

	region, err := flshm.Open(perUser)
	if err != nil {
		fmt.Println("FAILED: flshm.Open")
		os.Exit(1)
	}
	defer region.Close()

	tick, err := region.PeekTick()
	if err != nil {
		fmt.Printf("FAILED: PeekTick: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("tick: %d\n", tick)
}

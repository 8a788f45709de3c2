package net

import (
	"testing"

	"github.com/tmthrgd-flshm/flshm"
)

func newTestRegion() *flshm.Region {
	return flshm.NewRegionFromBytes(make([]byte, flshm.RegionSize))
}

func TestAddrNetwork(t *testing.T) {
	a := addr("foo")
	if a.Network() != "flshm" {
		t.Fatalf("Network() = %q, want %q", a.Network(), "flshm")
	}
	if a.String() != "foo" {
		t.Fatalf("String() = %q, want %q", a.String(), "foo")
	}
}

func TestDialListenAccept(t *testing.T) {
	region := newTestRegion()

	serverConn := Connection{Name: "demo", Version: flshm.Version4, Sandbox: flshm.SandboxLocalTrusted}
	ln, err := Listen(region, serverConn)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	server, err := ln.Accept()
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	if _, err := ln.Accept(); err == nil {
		t.Fatal("second Accept should fail")
	}

	clientConn := Connection{Name: "client", Version: flshm.Version4, Sandbox: flshm.SandboxLocalTrusted}
	client, err := Dial(region, clientConn)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer client.Close()

	if _, err := client.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	buf := make([]byte, 64)
	n, err := server.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(buf[:n]) != "hello" {
		t.Fatalf("Read = %q, want %q", buf[:n], "hello")
	}
}

func TestDialRejectsWrongNetwork(t *testing.T) {
	region := newTestRegion()
	d := NewDialer(region, Connection{Name: "x", Version: flshm.Version4, Sandbox: flshm.SandboxLocalTrusted})
	if _, err := d.Dial("tcp", "x"); err == nil {
		t.Fatal("Dial with wrong network should fail")
	}
}

func TestConnCloseRejectsFurtherIO(t *testing.T) {
	region := newTestRegion()
	conn, err := Dial(region, Connection{Name: "c", Version: flshm.Version4, Sandbox: flshm.SandboxLocalTrusted})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := conn.Write([]byte("x")); err == nil {
		t.Fatal("Write after Close should fail")
	}
}

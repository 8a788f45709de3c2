package flshm

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	sizes := []int{0, 1, 1024, 40000}

	for _, version := range []Version{Version1, Version2, Version3, Version4} {
		for _, sandbox := range []Sandbox{SandboxNone, SandboxRemote, SandboxLocalWithFile,
			SandboxLocalWithNetwork, SandboxLocalTrusted, SandboxApplication} {
			for _, amfv := range []AMF{AMF0, AMF3} {
				for _, size := range sizes {
					m := &Message{
						Tick:       42,
						Name:       "_foo",
						Host:       "localhost",
						Version:    version,
						Sandboxed:  true,
						HTTPS:      true,
						Sandbox:    sandbox,
						SWFVersion: 32,
						Filepath:   "/tmp/a.swf",
						AMFVersion: amfv,
						Method:     "ping",
						Data:       bytes.Repeat([]byte{0xAB}, size),
					}

					r := newTestRegion()
					if err := r.WriteMessage(m); err != nil {
						t.Fatalf("v%d sandbox %d amfv %d size %d: WriteMessage: %v",
							version, sandbox, amfv, size, err)
					}

					got, err := r.ReadMessage()
					if err != nil {
						t.Fatalf("v%d sandbox %d amfv %d size %d: ReadMessage: %v",
							version, sandbox, amfv, size, err)
					}

					assertRoundTrip(t, m, got)
				}
			}
		}
	}
}

func assertRoundTrip(t *testing.T, want, got *Message) {
	t.Helper()

	if got.Tick != want.Tick {
		t.Errorf("Tick = %d, want %d", got.Tick, want.Tick)
	}
	if got.Name != want.Name {
		t.Errorf("Name = %q, want %q", got.Name, want.Name)
	}
	if got.Host != want.Host {
		t.Errorf("Host = %q, want %q", got.Host, want.Host)
	}
	if got.Version != want.Version {
		t.Errorf("Version = %d, want %d", got.Version, want.Version)
	}
	if got.Method != want.Method {
		t.Errorf("Method = %q, want %q", got.Method, want.Method)
	}
	if !bytes.Equal(got.Data, want.Data) {
		t.Errorf("Data mismatch: len got %d want %d", len(got.Data), len(want.Data))
	}
	if int(got.Size) != len(want.Data) {
		t.Errorf("Size = %d, want %d", got.Size, len(want.Data))
	}

	if want.Version >= Version2 {
		if got.Sandboxed != want.Sandboxed || got.HTTPS != want.HTTPS {
			t.Errorf("Sandboxed/HTTPS = %v/%v, want %v/%v", got.Sandboxed, got.HTTPS, want.Sandboxed, want.HTTPS)
		}
	} else if got.Sandboxed || got.HTTPS {
		t.Errorf("version %d: Sandboxed/HTTPS should be absent, got %v/%v", want.Version, got.Sandboxed, got.HTTPS)
	}

	if want.Version >= Version3 {
		if got.Sandbox != want.Sandbox {
			t.Errorf("Sandbox = %d, want %d", got.Sandbox, want.Sandbox)
		}
		if got.SWFVersion != want.SWFVersion {
			t.Errorf("SWFVersion = %d, want %d", got.SWFVersion, want.SWFVersion)
		}
		if want.Sandbox == SandboxLocalWithFile {
			if got.Filepath != want.Filepath {
				t.Errorf("Filepath = %q, want %q", got.Filepath, want.Filepath)
			}
		} else if got.Filepath != "" {
			t.Errorf("Filepath should be absent when sandbox != local-with-file, got %q", got.Filepath)
		}
	} else {
		if got.Sandbox != SandboxNone {
			t.Errorf("version %d: Sandbox should be absent (None), got %d", want.Version, got.Sandbox)
		}
		if got.Filepath != "" {
			t.Errorf("version %d: Filepath should be absent, got %q", want.Version, got.Filepath)
		}
	}

	if want.Version >= Version4 {
		if got.AMFVersion != want.AMFVersion {
			t.Errorf("AMFVersion = %d, want %d", got.AMFVersion, want.AMFVersion)
		}
	} else if got.AMFVersion != 0 {
		t.Errorf("version %d: AMFVersion should be absent (0), got %d", want.Version, got.AMFVersion)
	}
}

// TestScenarioS1 is spec scenario S1: a version 1 message round-trips with
// all version-gated fields absent, and PeekTick reports the written tick.
func TestScenarioS1(t *testing.T) {
	r := newTestRegion()
	m := &Message{Tick: 42, Name: "_foo", Host: "localhost", Version: Version1, Method: "ping"}

	if err := r.WriteMessage(m); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	got, err := r.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	assertRoundTrip(t, m, got)

	tick, err := r.PeekTick()
	if err != nil {
		t.Fatalf("PeekTick: %v", err)
	}
	if tick != 42 {
		t.Fatalf("PeekTick = %d, want 42", tick)
	}
}

// TestScenarioS2 is spec scenario S2: filepath is present only under
// version 3 + local-with-file, and absent otherwise.
func TestScenarioS2(t *testing.T) {
	r := newTestRegion()

	m1 := &Message{
		Tick: 1, Name: "a", Host: "h", Version: Version3,
		Sandbox: SandboxLocalWithFile, Filepath: "/tmp/a.swf", SWFVersion: 9, Method: "m",
	}
	if err := r.WriteMessage(m1); err != nil {
		t.Fatalf("WriteMessage 1: %v", err)
	}
	got1, err := r.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage 1: %v", err)
	}
	if got1.Filepath != "/tmp/a.swf" {
		t.Fatalf("Filepath = %q, want /tmp/a.swf", got1.Filepath)
	}

	m2 := &Message{Tick: 2, Name: "a", Host: "h", Version: Version3, Sandbox: SandboxRemote, Method: "m"}
	if err := r.WriteMessage(m2); err != nil {
		t.Fatalf("WriteMessage 2: %v", err)
	}
	got2, err := r.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage 2: %v", err)
	}
	if got2.Filepath != "" {
		t.Fatalf("Filepath = %q, want empty", got2.Filepath)
	}
}

// TestScenarioS5 is spec scenario S5: a 40000-byte payload round-trips
// byte-for-byte.
func TestScenarioS5(t *testing.T) {
	r := newTestRegion()
	data := make([]byte, 40000)
	for i := range data {
		data[i] = byte(i)
	}

	m := &Message{Tick: 1, Name: "a", Host: "h", Version: Version1, Method: "m", Data: data}
	if err := r.WriteMessage(m); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	got, err := r.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if !bytes.Equal(got.Data, data) {
		t.Fatalf("payload mismatch")
	}
}

// TestScenarioS6 is spec scenario S6: a corrupted size field is reported as
// ErrCorrupt on read, and clear restores the empty state.
func TestScenarioS6(t *testing.T) {
	r := newTestRegion()
	m := &Message{Tick: 1, Name: "a", Host: "h", Version: Version1, Method: "m"}
	if err := r.WriteMessage(m); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	if err := r.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	corruptSizeLocked(r, 50000)
	if err := r.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}

	if _, err := r.ReadMessage(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("ReadMessage = %v, want ErrCorrupt", err)
	}

	if err := r.ClearMessage(); err != nil {
		t.Fatalf("ClearMessage: %v", err)
	}
	tick, err := r.PeekTick()
	if err != nil {
		t.Fatalf("PeekTick: %v", err)
	}
	if tick != 0 {
		t.Fatalf("PeekTick after clear = %d, want 0", tick)
	}
	if got, err := r.ReadMessage(); err != nil || got != nil {
		t.Fatalf("ReadMessage after clear = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestClearIdempotent(t *testing.T) {
	r := newTestRegion()
	m := &Message{Tick: 7, Name: "a", Host: "h", Version: Version1, Method: "m"}
	if err := r.WriteMessage(m); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	if err := r.ClearMessage(); err != nil {
		t.Fatalf("ClearMessage 1: %v", err)
	}
	if err := r.ClearMessage(); err != nil {
		t.Fatalf("ClearMessage 2: %v", err)
	}

	tick, err := r.PeekTick()
	if err != nil || tick != 0 {
		t.Fatalf("PeekTick = (%d, %v), want (0, nil)", tick, err)
	}
	if got, err := r.ReadMessage(); err != nil || got != nil {
		t.Fatalf("ReadMessage = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestSizeCap(t *testing.T) {
	r := newTestRegion()

	// MessageMaxSize exactly: version 1 header is 1 (version) + len(name)+1
	// + len(host)+1 + len(method)+1 bytes, the rest is payload.
	const name, host, method = "n", "h", "m"
	headerLen := 1 + len(name) + 1 + len(host) + 1 + len(method) + 1

	okData := make([]byte, MessageMaxSize-headerLen)
	m := &Message{Tick: 1, Name: name, Host: host, Version: Version1, Method: method, Data: okData}
	if err := r.WriteMessage(m); err != nil {
		t.Fatalf("WriteMessage at cap: %v", err)
	}

	tooBig := make([]byte, MessageMaxSize-headerLen+1)
	m2 := &Message{Tick: 1, Name: name, Host: host, Version: Version1, Method: method, Data: tooBig}
	if err := r.WriteMessage(m2); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("WriteMessage over cap = %v, want ErrTooLarge", err)
	}
}

func TestWriteMessageZeroTickRejected(t *testing.T) {
	r := newTestRegion()
	m := &Message{Tick: 0, Name: "a", Host: "h", Version: Version1, Method: "m"}
	if err := r.WriteMessage(m); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("WriteMessage with tick 0 = %v, want ErrInvalidArgument", err)
	}
}

func TestPublicationAtomicity(t *testing.T) {
	r := newTestRegion()

	m1 := &Message{Tick: 1, Name: "a", Host: "h", Version: Version1, Method: "m"}
	if err := r.WriteMessage(m1); err != nil {
		t.Fatalf("WriteMessage 1: %v", err)
	}

	tick, err := r.PeekTick()
	if err != nil || tick != 1 {
		t.Fatalf("PeekTick = (%d, %v), want (1, nil)", tick, err)
	}

	m2 := &Message{Tick: 2, Name: "b", Host: "h2", Version: Version1, Method: "m2"}
	if err := r.WriteMessage(m2); err != nil {
		t.Fatalf("WriteMessage 2: %v", err)
	}

	tick, err = r.PeekTick()
	if err != nil || tick != 2 {
		t.Fatalf("PeekTick after second write = (%d, %v), want (2, nil)", tick, err)
	}
}

// corruptSizeLocked overwrites the region's size field directly, bypassing
// WriteMessage, to construct the corrupt-frame fixture spec scenario S6
// calls for. The caller must hold the lock.
func corruptSizeLocked(r *Region, size uint32) {
	buf := r.mem[messageSizeOffset : messageSizeOffset+4]
	buf[0] = byte(size)
	buf[1] = byte(size >> 8)
	buf[2] = byte(size >> 16)
	buf[3] = byte(size >> 24)
}

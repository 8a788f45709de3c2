package flshm

// fakeHandle is an in-process stand-in for platform.Handle: a plain
// heap-allocated buffer with no-op locking, used so the codec and registry
// logic in this package can be tested without a real semaphore/segment.
type fakeHandle struct {
	buf []byte
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{buf: make([]byte, RegionSize)}
}

func (f *fakeHandle) Bytes() []byte  { return f.buf }
func (f *fakeHandle) Lock() error   { return nil }
func (f *fakeHandle) Unlock() error { return nil }
func (f *fakeHandle) Close() error  { return nil }

func newTestRegion() *Region {
	h := newFakeHandle()
	return &Region{handle: h, mem: h.Bytes()}
}

package flshm

// NewRegionFromBytes wraps an in-memory buffer as a Region with a no-op
// lock, for packages outside flshm (such as transport's tests) that need to
// exercise Region-backed code without opening a real platform handle. buf
// must be at least RegionSize bytes; it is used directly, not copied.
func NewRegionFromBytes(buf []byte) *Region {
	return &Region{handle: memHandle(buf), mem: buf}
}

type memHandle []byte

func (m memHandle) Bytes() []byte { return m }
func (memHandle) Lock() error     { return nil }
func (memHandle) Unlock() error   { return nil }
func (memHandle) Close() error    { return nil }

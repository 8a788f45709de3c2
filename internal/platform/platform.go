// Package platform is the sole component aware of the host operating
// system: it derives the semaphore and shared-memory keys used to rendezvous
// with the ASVM, and it opens, maps, locks, unlocks and closes those
// primitives. Every other package manipulates only the mapped byte range a
// Handle exposes.
//
// One implementation backs each host family: platform_windows.go (named
// mutex + named file mapping), platform_darwin.go (cgo, POSIX named
// semaphore + SysV shared memory) and platform_unix.go (cgo, SysV semaphore
// + SysV shared memory, for everything else).
package platform

// RegionSize is the fixed size of the mapped shared-memory segment. Kept
// here (duplicated from the flshm package's own constant) so this package
// has no import-cycle dependency on flshm.
const RegionSize = 64528

// Handle owns a mapped shared-memory segment and the semaphore guarding it.
// Lock provides mutual exclusion against any other process using the same
// keys; it is the sole mechanism guarding all other operations on the
// region. Close detaches the local mapping and releases local handles but
// never removes the kernel objects, which persist so other processes keep
// seeing the same region.
type Handle interface {
	// Bytes returns the mapped region. The slice is valid until Close.
	Bytes() []byte

	// Lock blocks until the semaphore is acquired.
	Lock() error

	// Unlock releases a previously acquired lock.
	Unlock() error

	// Close detaches the mapping and releases local handles.
	Close() error
}

// Open opens (creating if absent) the semaphore and the RegionSize-byte
// segment identified by the keys derived from isPerUser, maps the segment
// into the caller's address space and returns a Handle. The semaphore is
// created counting-initialized such that its first Lock succeeds without
// blocking.
func Open(isPerUser bool) (Handle, error) {
	return open(isPerUser)
}

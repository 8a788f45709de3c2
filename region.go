package flshm

import (
	"fmt"

	"github.com/tmthrgd-flshm/flshm/internal/platform"
)

// regionHandle is the subset of platform.Handle that Region depends on. It
// is satisfied by platform.Handle in production and by a plain in-memory
// fake in tests, so the codec and registry logic in this package can be
// exercised without a real semaphore or segment.
type regionHandle interface {
	Bytes() []byte
	Lock() error
	Unlock() error
	Close() error
}

// Region is an opened, mapped view of the shared-memory region plus the
// semaphore guarding it. Every exported method that reads or writes region
// bytes takes the lock for the duration of the call and releases it via
// defer on every exit path, including panics.
type Region struct {
	handle regionHandle
	mem    []byte
}

// Open opens (creating if absent) the semaphore and shared-memory segment
// for the given scope and maps it into the caller's address space.
// isPerUser has the same meaning as the ASVM's own isPerUser: true scopes
// the region to the invoking user account, false scopes it host-wide.
func Open(isPerUser bool) (*Region, error) {
	h, err := platform.Open(isPerUser)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Region{handle: h, mem: h.Bytes()}, nil
}

// Close detaches the mapping and releases local handles. It does not remove
// the kernel-level semaphore or segment, which persist so other processes
// continue to see the same region.
func (r *Region) Close() error {
	return r.handle.Close()
}

// Lock acquires exclusive access to the region, blocking until it is
// available. Every other method on Region takes and releases the lock
// itself, so calling one of them while already holding Lock blocks on the
// POSIX and SysV semaphores; a read-then-clear cannot be made one atomic
// unit through those methods.
func (r *Region) Lock() error {
	if err := r.handle.Lock(); err != nil {
		return fmt.Errorf("%w: %v", ErrLockLost, err)
	}
	return nil
}

// Unlock releases a lock acquired with Lock.
func (r *Region) Unlock() error {
	if err := r.handle.Unlock(); err != nil {
		return fmt.Errorf("%w: %v", ErrLockLost, err)
	}
	return nil
}

// withLock runs fn with the region locked, guaranteeing Unlock runs on every
// exit path including a panic inside fn. A panic inside fn is recovered and
// reported as ErrLockLost rather than propagated, since a caller catching it
// has no way to know whether fn left the region mid-update.
func (r *Region) withLock(fn func() error) (err error) {
	if err := r.Lock(); err != nil {
		return err
	}
	defer func() {
		if uerr := r.Unlock(); err == nil {
			err = uerr
		}
	}()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("flshm: recovered panic: %v: %w", p, ErrLockLost)
		}
	}()
	return fn()
}

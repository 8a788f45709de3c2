package flshm

import (
	"encoding/binary"
	"fmt"
)

// ListConnections reads the registry's count and that many entries. The
// returned Connection.Name strings are copies; unlike the raw mapped bytes
// they alias in the region, they remain valid after the lock is released.
func (r *Region) ListConnections() ([]Connection, error) {
	var conns []Connection
	err := r.withLock(func() error {
		count := r.registryCountLocked()
		conns = make([]Connection, count)
		for i := uint32(0); i < count; i++ {
			conns[i] = r.registrySlotLocked(i)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conns, nil
}

// AddConnection appends conn to the registry. It fails with ErrInvalidName
// if conn.Name fails the validity predicate or is already registered
// (add's precondition is that the name is not already present), with
// ErrInvalidArgument if conn.Sandbox is SandboxApplication (never valid in
// the registry) or conn.Version is out of range, and with ErrFull if the
// registry already holds MaxConnections entries. On any failure the
// registry is left unchanged.
func (r *Region) AddConnection(conn Connection) error {
	if err := requireNameValid(conn.Name); err != nil {
		return err
	}
	if conn.Sandbox == SandboxApplication {
		return fmt.Errorf("flshm: sandbox application is not valid in the registry: %w", ErrInvalidArgument)
	}
	if !conn.Version.valid() {
		return fmt.Errorf("flshm: version %d: %w", conn.Version, ErrInvalidArgument)
	}
	if conn.Sandbox != SandboxNone && !conn.Sandbox.valid() {
		return fmt.Errorf("flshm: sandbox %d: %w", conn.Sandbox, ErrInvalidArgument)
	}

	return r.withLock(func() error {
		count := r.registryCountLocked()
		for i := uint32(0); i < count; i++ {
			if r.registrySlotLocked(i).Name == conn.Name {
				return fmt.Errorf("flshm: connection %q already registered: %w", conn.Name, ErrInvalidName)
			}
		}
		if count >= MaxConnections {
			return ErrFull
		}

		r.writeRegistrySlotLocked(count, conn)
		r.setRegistryCountLocked(count + 1)
		return nil
	})
}

// RemoveConnection finds the first entry whose (Name, Version, Sandbox)
// match conn and removes it, shifting later entries forward by one slot to
// keep the table packed and preserve registration order. It fails with
// ErrNotFound if no matching entry exists.
func (r *Region) RemoveConnection(conn Connection) error {
	return r.withLock(func() error {
		count := r.registryCountLocked()

		found := -1
		for i := uint32(0); i < count; i++ {
			if r.registrySlotLocked(i) == conn {
				found = int(i)
				break
			}
		}
		if found < 0 {
			return ErrNotFound
		}

		for i := uint32(found); i+1 < count; i++ {
			r.writeRegistrySlotLocked(i, r.registrySlotLocked(i+1))
		}
		r.setRegistryCountLocked(count - 1)
		return nil
	})
}

func (r *Region) registryCountLocked() uint32 {
	count := binary.LittleEndian.Uint32(r.mem[registryCountOffset:])
	if count > MaxConnections {
		// Defensive: a corrupt or foreign region must not be treated
		// as having more entries than physically fit.
		count = MaxConnections
	}
	return count
}

func (r *Region) setRegistryCountLocked(count uint32) {
	binary.LittleEndian.PutUint32(r.mem[registryCountOffset:], count)
}

func (r *Region) slotBytes(i uint32) []byte {
	start := registrySlotsOffset + int(i)*registrySlotSize
	return r.mem[start : start+registrySlotSize]
}

func (r *Region) registrySlotLocked(i uint32) Connection {
	slot := r.slotBytes(i)

	nameEnd := 0
	for nameEnd < registryNameBudget && slot[nameEnd] != 0 {
		nameEnd++
	}
	name := string(slot[:nameEnd])

	version := Version(slot[registryNameBudget])
	sandbox := Sandbox(int8(slot[registryNameBudget+1]))

	return Connection{Name: name, Version: version, Sandbox: sandbox}
}

func (r *Region) writeRegistrySlotLocked(i uint32, conn Connection) {
	slot := r.slotBytes(i)
	for j := range slot {
		slot[j] = 0
	}
	copy(slot, conn.Name)
	slot[registryNameBudget] = byte(conn.Version)
	slot[registryNameBudget+1] = byte(conn.Sandbox)
}

// Copyright 2016 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

package flshm

import "errors"

// Error kinds returned by this package. Every fallible operation returns one
// of these, wrapped with additional context via fmt.Errorf's %w verb; use
// errors.Is to discriminate.
var (
	// ErrUnavailable is returned when the semaphore or segment cannot be
	// opened or attached (permissions, exhaustion).
	ErrUnavailable = errors.New("flshm: semaphore or segment unavailable")

	// ErrLockLost is returned when an OS-level lock or unlock call fails.
	ErrLockLost = errors.New("flshm: lock lost")

	// ErrTooLarge is returned when a serialized message would exceed
	// MessageMaxSize bytes. The region is left unchanged.
	ErrTooLarge = errors.New("flshm: message too large")

	// ErrCorrupt is returned on read when size is out of range or a frame
	// field is missing or unterminated. The slot should be treated as
	// empty and may be cleared.
	ErrCorrupt = errors.New("flshm: corrupt message frame")

	// ErrFull is returned by AddConnection when the registry already
	// holds MaxConnections entries.
	ErrFull = errors.New("flshm: connection registry full")

	// ErrNotFound is returned by RemoveConnection when no matching entry
	// exists.
	ErrNotFound = errors.New("flshm: connection not found")

	// ErrInvalidName is returned when a connection name fails the
	// validity predicate.
	ErrInvalidName = errors.New("flshm: invalid connection name")

	// ErrInvalidArgument is returned when a field value (version,
	// sandbox, amfv) is outside its enumerated set.
	ErrInvalidArgument = errors.New("flshm: invalid argument")
)

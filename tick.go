package flshm

import "time"

// Tick returns a 32-bit change-detection stamp derived from the current
// wall clock. Successive calls produce strictly increasing values in
// practice, but this is a change-detection signal, not a Lamport clock: no
// stronger ordering guarantee is made.
//
// Tick may legally return 0, which collides with the region's "slot empty"
// sentinel. Callers writing a message must retry until Tick returns
// non-zero.
func Tick() uint32 {
	return uint32(time.Now().UnixMilli())
}

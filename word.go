package flshm

import "unsafe"

// wordAt returns a pointer to the 4-byte little-endian word at offset
// within buf, suitable for atomic loads/stores. offset is always one of the
// fixed region constants (8 or 12), both 4-byte aligned, so this is safe on
// every architecture this library targets.
func wordAt(buf []byte, offset int) unsafe.Pointer {
	return unsafe.Pointer(&buf[offset])
}

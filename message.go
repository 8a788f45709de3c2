package flshm

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"
)

// WriteMessage serializes and publishes m into the region's single message
// slot.
//
// The frame is written into the body area first, the serialized length
// second, and the tick last: publication is atomic to a receiver that polls
// the tick field under lock, because the tick write is the final, visible
// step. This final store uses sync/atomic as a portable stand-in for a full
// fence, defending against weaker semaphore memory-ordering semantics than
// this implementation's lock already provides.
//
// If m.Tick is 0, WriteMessage fails with ErrInvalidArgument: a writer that
// generated a 0 tick must regenerate it (see Tick) before calling
// WriteMessage, since 0 is the "slot empty" sentinel.
func (r *Region) WriteMessage(m *Message) error {
	if m.Tick == 0 {
		return fmt.Errorf("flshm: tick 0 is the empty sentinel: %w", ErrInvalidArgument)
	}

	frame, err := encodeFrame(m)
	if err != nil {
		return err
	}
	if len(frame) > MessageMaxSize {
		return fmt.Errorf("flshm: frame is %d bytes, max %d: %w", len(frame), MessageMaxSize, ErrTooLarge)
	}

	return r.withLock(func() error {
		copy(r.mem[messageBodyOffset:], frame)

		binary.LittleEndian.PutUint32(r.mem[messageSizeOffset:], uint32(len(frame)))

		tickWord := (*uint32)(wordAt(r.mem, messageTickOffset))
		atomic.StoreUint32(tickWord, m.Tick)

		return nil
	})
}

// ReadMessage reads and parses the current message slot. It returns
// (nil, nil) if the slot is empty (tick == 0). A corrupt frame (size out of
// range, or a required field missing or unterminated within size bytes)
// returns (nil, ErrCorrupt); the caller may treat the slot as empty and call
// ClearMessage.
func (r *Region) ReadMessage() (*Message, error) {
	var m *Message
	err := r.withLock(func() error {
		tick := r.peekTickLocked()
		if tick == 0 {
			return nil
		}

		size := binary.LittleEndian.Uint32(r.mem[messageSizeOffset:])

		msg, err := decodeFrame(r.mem[messageBodyOffset:], size)
		if err != nil {
			return err
		}
		msg.Tick = tick
		m = msg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// PeekTick returns the current slot's tick without parsing the frame. It is
// the "tick_of" operation used by receivers to poll for a new message by
// comparing against the tick they last consumed.
func (r *Region) PeekTick() (uint32, error) {
	var tick uint32
	err := r.withLock(func() error {
		tick = r.peekTickLocked()
		return nil
	})
	return tick, err
}

func (r *Region) peekTickLocked() uint32 {
	tickWord := (*uint32)(wordAt(r.mem, messageTickOffset))
	return atomic.LoadUint32(tickWord)
}

// ClearMessage erases the message slot: tick and size are zeroed, which is
// sufficient to make ReadMessage report "no message" without wiping the
// full body. ClearMessage is idempotent.
func (r *Region) ClearMessage() error {
	return r.withLock(func() error {
		tickWord := (*uint32)(wordAt(r.mem, messageTickOffset))
		atomic.StoreUint32(tickWord, 0)

		binary.LittleEndian.PutUint32(r.mem[messageSizeOffset:], 0)

		for i := 0; i < 8 && messageBodyOffset+i < len(r.mem); i++ {
			r.mem[messageBodyOffset+i] = 0
		}
		return nil
	})
}

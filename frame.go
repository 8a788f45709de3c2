package flshm

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	flagSandboxed = 1 << 0
	flagHTTPS     = 1 << 1
)

// encodeFrame serializes m into the version-tagged on-wire frame: a version
// byte, NUL-terminated name and host, then fields gated in by version (see
// types.go's Message doc comment), ending with the method string and raw
// payload. It does not enforce MessageMaxSize; callers check the result
// length against that cap themselves so they can return ErrTooLarge without
// touching the region.
func encodeFrame(m *Message) ([]byte, error) {
	if !m.Version.valid() {
		return nil, fmt.Errorf("flshm: version %d: %w", m.Version, ErrInvalidArgument)
	}
	if m.Version >= Version3 && m.Sandbox != SandboxNone && !m.Sandbox.valid() {
		return nil, fmt.Errorf("flshm: sandbox %d: %w", m.Sandbox, ErrInvalidArgument)
	}
	if m.Version >= Version4 && !m.AMFVersion.valid() {
		return nil, fmt.Errorf("flshm: amfv %d: %w", m.AMFVersion, ErrInvalidArgument)
	}
	if err := requireNameValid(m.Name); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte(byte(m.Version))
	writeCString(&buf, m.Name)
	writeCString(&buf, m.Host)

	if m.Version >= Version2 {
		var flags byte
		if m.Sandboxed {
			flags |= flagSandboxed
		}
		if m.HTTPS {
			flags |= flagHTTPS
		}
		buf.WriteByte(flags)
	}

	if m.Version >= Version3 {
		buf.WriteByte(byte(m.Sandbox))

		var swfv [4]byte
		binary.LittleEndian.PutUint32(swfv[:], m.SWFVersion)
		buf.Write(swfv[:])

		// filepath is serialized iff version >= 3 AND sandbox ==
		// local-with-file; it is silently omitted under any other
		// condition rather than treated as an error.
		if m.Sandbox == SandboxLocalWithFile {
			writeCString(&buf, m.Filepath)
		}
	}

	if m.Version >= Version4 {
		buf.WriteByte(byte(m.AMFVersion))
	}

	writeCString(&buf, m.Method)
	buf.Write(m.Data)

	return buf.Bytes(), nil
}

// decodeFrame parses the first frameLen bytes of body as a frame. body may
// be longer than frameLen; bytes at or beyond frameLen are never inspected.
func decodeFrame(body []byte, frameLen uint32) (*Message, error) {
	if frameLen == 0 || frameLen > MessageMaxSize || int(frameLen) > len(body) {
		return nil, ErrCorrupt
	}
	r := &cursor{buf: body[:frameLen]}

	version := Version(r.byte())
	if r.err != nil || !version.valid() {
		return nil, ErrCorrupt
	}

	m := &Message{Version: version, Sandbox: SandboxNone}

	m.Name = r.cString()
	m.Host = r.cString()

	if version >= Version2 {
		flags := r.byte()
		m.Sandboxed = flags&flagSandboxed != 0
		m.HTTPS = flags&flagHTTPS != 0
	}

	if version >= Version3 {
		m.Sandbox = Sandbox(int8(r.byte()))
		m.SWFVersion = r.uint32LE()

		if r.err == nil && m.Sandbox == SandboxLocalWithFile {
			m.Filepath = r.cString()
		}
	}

	if version >= Version4 {
		m.AMFVersion = AMF(r.byte())
	}

	m.Method = r.cString()

	if r.err != nil {
		return nil, ErrCorrupt
	}

	m.Data = append([]byte(nil), r.rest()...)
	m.Size = uint32(len(m.Data))

	return m, nil
}

func requireNameValid(name string) error {
	if !ValidConnectionName(name) {
		return fmt.Errorf("flshm: name %q: %w", name, ErrInvalidName)
	}
	return nil
}

func writeCString(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte(0)
}

// cursor is a small sequential reader over a frame buffer that records the
// first error encountered so callers can check it once at the end instead
// of after every field.
type cursor struct {
	buf []byte
	pos int
	err error
}

func (c *cursor) byte() byte {
	if c.err != nil {
		return 0
	}
	if c.pos >= len(c.buf) {
		c.err = ErrCorrupt
		return 0
	}
	b := c.buf[c.pos]
	c.pos++
	return b
}

func (c *cursor) uint32LE() uint32 {
	if c.err != nil {
		return 0
	}
	if c.pos+4 > len(c.buf) {
		c.err = ErrCorrupt
		return 0
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v
}

func (c *cursor) cString() string {
	if c.err != nil {
		return ""
	}
	i := bytes.IndexByte(c.buf[c.pos:], 0)
	if i < 0 {
		c.err = ErrCorrupt
		return ""
	}
	s := string(c.buf[c.pos : c.pos+i])
	c.pos += i + 1
	return s
}

func (c *cursor) rest() []byte {
	if c.err != nil {
		return nil
	}
	return c.buf[c.pos:]
}

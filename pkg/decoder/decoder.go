// Package decoder implements cursor-based reading of discriminator-prefixed
// instruction payloads, plus a registry dispatching payloads to typed
// decoders by their 8-byte discriminator.
package decoder

import (
	"encoding/binary"
	"fmt"
)

// DiscriminatorLen is the length of the opaque instruction prefix.
const DiscriminatorLen = 8

// Reader is a little-endian cursor over an instruction payload.
type Reader struct {
	data   []byte
	offset int
}

// NewReader creates a reader over data. The reader does not copy; callers
// must not mutate data while reading.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int {
	return r.offset
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}

func (r *Reader) require(n int, what string) error {
	if r.Remaining() < n {
		return fmt.Errorf("truncated payload: need %d bytes for %s at offset %d, have %d", n, what, r.offset, r.Remaining())
	}
	return nil
}

// Discriminator reads the 8-byte instruction prefix.
func (r *Reader) Discriminator() ([DiscriminatorLen]byte, error) {
	var disc [DiscriminatorLen]byte
	if err := r.require(DiscriminatorLen, "discriminator"); err != nil {
		return disc, err
	}
	copy(disc[:], r.data[r.offset:])
	r.offset += DiscriminatorLen
	return disc, nil
}

// Uint8 reads one byte.
func (r *Reader) Uint8() (uint8, error) {
	if err := r.require(1, "u8"); err != nil {
		return 0, err
	}
	v := r.data[r.offset]
	r.offset++
	return v, nil
}

// Uint64 reads a little-endian u64.
func (r *Reader) Uint64() (uint64, error) {
	if err := r.require(8, "u64"); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.offset:])
	r.offset += 8
	return v, nil
}

// String reads a u32-length-prefixed UTF-8 string.
func (r *Reader) String() (string, error) {
	if err := r.require(4, "string length"); err != nil {
		return "", err
	}
	n := int(binary.LittleEndian.Uint32(r.data[r.offset:]))
	r.offset += 4
	if err := r.require(n, "string bytes"); err != nil {
		return "", err
	}
	s := string(r.data[r.offset : r.offset+n])
	r.offset += n
	return s, nil
}

// Done returns an error if unread bytes remain. Called after decoding a
// fixed-layout payload to catch layout drift.
func (r *Reader) Done() error {
	if rem := r.Remaining(); rem != 0 {
		return fmt.Errorf("payload has %d trailing bytes at offset %d", rem, r.offset)
	}
	return nil
}

// DecodeFunc decodes the body of a payload after its discriminator has been
// consumed.
type DecodeFunc func(r *Reader) (any, error)

// Registry dispatches payloads to decoders by discriminator.
type Registry struct {
	decoders map[[DiscriminatorLen]byte]DecodeFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[[DiscriminatorLen]byte]DecodeFunc)}
}

// Register binds a decoder to a discriminator, replacing any previous
// binding.
func (g *Registry) Register(disc [DiscriminatorLen]byte, fn DecodeFunc) {
	g.decoders[disc] = fn
}

// Decode reads the payload's discriminator and dispatches to the registered
// decoder. The decoder must consume the entire payload.
func (g *Registry) Decode(data []byte) (any, error) {
	r := NewReader(data)
	disc, err := r.Discriminator()
	if err != nil {
		return nil, err
	}

	fn, ok := g.decoders[disc]
	if !ok {
		return nil, fmt.Errorf("unknown instruction discriminator %x", disc)
	}

	v, err := fn(r)
	if err != nil {
		return nil, err
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return v, nil
}

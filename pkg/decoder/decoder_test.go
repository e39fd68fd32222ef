package decoder

import (
	"encoding/binary"
	"testing"
)

func payload(disc [8]byte, body []byte) []byte {
	return append(disc[:], body...)
}

func TestReaderFields(t *testing.T) {
	data := make([]byte, 0, 32)
	data = append(data, 7)
	data = binary.LittleEndian.AppendUint64(data, 42)
	data = binary.LittleEndian.AppendUint32(data, 5)
	data = append(data, "hello"...)

	r := NewReader(data)

	u8, err := r.Uint8()
	if err != nil || u8 != 7 {
		t.Fatalf("Uint8 = %d, %v", u8, err)
	}
	u64, err := r.Uint64()
	if err != nil || u64 != 42 {
		t.Fatalf("Uint64 = %d, %v", u64, err)
	}
	s, err := r.String()
	if err != nil || s != "hello" {
		t.Fatalf("String = %q, %v", s, err)
	}
	if err := r.Done(); err != nil {
		t.Fatalf("Done: %v", err)
	}
}

func TestReaderTruncation(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	if _, err := r.Uint64(); err == nil {
		t.Error("expected truncation error for short u64")
	}

	short := binary.LittleEndian.AppendUint32(nil, 100)
	if _, err := NewReader(short).String(); err == nil {
		t.Error("expected truncation error for short string body")
	}
}

func TestRegistryDispatch(t *testing.T) {
	discA := [8]byte{1, 1, 1, 1, 1, 1, 1, 1}
	discB := [8]byte{2, 2, 2, 2, 2, 2, 2, 2}

	reg := NewRegistry()
	reg.Register(discA, func(r *Reader) (any, error) {
		return r.Uint64()
	})

	body := binary.LittleEndian.AppendUint64(nil, 99)

	v, err := reg.Decode(payload(discA, body))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if v.(uint64) != 99 {
		t.Errorf("decoded %v, want 99", v)
	}

	if _, err := reg.Decode(payload(discB, body)); err == nil {
		t.Error("expected error for unregistered discriminator")
	}
}

func TestRegistryRejectsTrailingBytes(t *testing.T) {
	disc := [8]byte{3, 3, 3, 3, 3, 3, 3, 3}

	reg := NewRegistry()
	reg.Register(disc, func(r *Reader) (any, error) {
		return r.Uint8()
	})

	if _, err := reg.Decode(payload(disc, []byte{1, 2})); err == nil {
		t.Error("expected error for unconsumed payload bytes")
	}
}

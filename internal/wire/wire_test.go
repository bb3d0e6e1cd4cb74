package wire

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestMagic(t *testing.T) {
	t.Parallel()

	want := []byte{'M', 'E', 'D', 'I', 'A', 0xF0, 0x9F, 0x93, 0xA6}
	if !bytes.Equal([]byte(Magic), want) {
		t.Fatalf("magic = % x, want % x", Magic, want)
	}
	if len(Magic) != 9 {
		t.Fatalf("magic length = %d, want 9", len(Magic))
	}
}

func TestUint64RoundTrip(t *testing.T) {
	t.Parallel()

	values := []uint64{0, 1, 255, 256, 1<<32 - 1, 1 << 32, 1<<64 - 1}
	for _, v := range values {
		var buf bytes.Buffer
		if err := WriteUint64(&buf, v); err != nil {
			t.Fatalf("WriteUint64(%d): %v", v, err)
		}
		if buf.Len() != Uint64Size {
			t.Fatalf("WriteUint64(%d) wrote %d bytes, want %d", v, buf.Len(), Uint64Size)
		}
		got, err := ReadUint64(&buf)
		if err != nil {
			t.Fatalf("ReadUint64(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip = %d, want %d", got, v)
		}
	}
}

func TestUint64LittleEndian(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteUint64(&buf, 0x0102030405060708); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("encoding = % x, want % x", buf.Bytes(), want)
	}
}

func TestReadUint64Short(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "empty", data: nil, wantErr: io.EOF},
		{name: "partial", data: []byte{1, 2, 3}, wantErr: io.ErrUnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadUint64(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHashRoundTrip(t *testing.T) {
	t.Parallel()

	var h [HashSize]byte
	for i := range h {
		h[i] = byte(i)
	}

	var buf bytes.Buffer
	if err := WriteHash(&buf, h); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != HashSize {
		t.Fatalf("WriteHash wrote %d bytes, want %d", buf.Len(), HashSize)
	}

	got, err := ReadHash(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != h {
		t.Fatalf("round trip = %x, want %x", got, h)
	}
}

func TestReadHashShort(t *testing.T) {
	t.Parallel()

	_, err := ReadHash(bytes.NewReader(make([]byte, HashSize-1)))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("err = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

// Package wire implements the primitive encodings shared by the package
// reader and writer: the magic marker, little-endian u64 fields, and raw
// 32-byte content hashes.
package wire

import (
	"encoding/binary"
	"io"
)

// Magic marks the start of every package file. The trailing symbol is
// four bytes of UTF-8, making the marker nine bytes long in total.
const Magic = "MEDIA\U0001F4E6"

// HashSize is the length in bytes of a raw content hash.
const HashSize = 32

// Uint64Size is the length in bytes of an encoded u64 field.
const Uint64Size = 8

// WriteUint64 writes v to w in little-endian byte order.
func WriteUint64(w io.Writer, v uint64) error {
	var buf [Uint64Size]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadUint64 reads a little-endian u64 from r.
//
// A short read yields io.ErrUnexpectedEOF, or io.EOF when no bytes
// remain at all.
func ReadUint64(r io.Reader) (uint64, error) {
	var buf [Uint64Size]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// WriteHash writes the raw hash bytes to w.
func WriteHash(w io.Writer, h [HashSize]byte) error {
	_, err := w.Write(h[:])
	return err
}

// ReadHash reads the raw bytes of a content hash from r.
//
// Short reads are reported the same way as ReadUint64.
func ReadHash(r io.Reader) ([HashSize]byte, error) {
	var h [HashSize]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return [HashSize]byte{}, err
	}
	return h, nil
}

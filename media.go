package media

import (
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/fxamacker/cbor/v2"
	"lukechampine.com/blake3"

	"github.com/meigma/media/internal/wire"
)

// HashSize is the length in bytes of a content hash.
const HashSize = wire.HashSize

// Hash is the BLAKE3 hash of a blob's contents. Packages address every blob
// by hash, so blobs with equal contents are stored once.
type Hash [HashSize]byte

// Sum returns the content hash of data.
func Sum(data []byte) Hash {
	return blake3.Sum256(data)
}

// NewHasher returns a streaming hasher producing content hashes, for callers
// that cannot hold blob contents in memory.
func NewHasher() hash.Hash {
	return blake3.New(HashSize, nil)
}

// String returns the lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalText encodes the hash as lowercase hex.
func (h Hash) MarshalText() ([]byte, error) {
	dst := make([]byte, hex.EncodedLen(len(h)))
	hex.Encode(dst, h[:])
	return dst, nil
}

// UnmarshalText decodes a hex-encoded hash.
func (h *Hash) UnmarshalText(text []byte) error {
	if len(text) != hex.EncodedLen(HashSize) {
		return fmt.Errorf("media: hash must be %d hex characters, got %d", hex.EncodedLen(HashSize), len(text))
	}
	_, err := hex.Decode(h[:], text)
	return err
}

// MarshalCBOR encodes the hash as a CBOR byte string.
func (h Hash) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(h[:])
}

// UnmarshalCBOR decodes a CBOR byte string into the hash.
func (h *Hash) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != HashSize {
		return fmt.Errorf("media: hash must be %d bytes, got %d", HashSize, len(raw))
	}
	copy(h[:], raw)
	return nil
}

// Type identifies the kind of content a manifest describes.
type Type string

const (
	TypeApp   Type = "app"
	TypeComic Type = "comic"
)

// Valid reports whether t is a known content type.
func (t Type) Valid() bool {
	switch t {
	case TypeApp, TypeComic:
		return true
	default:
		return false
	}
}

// Entry is one row of a package's entry table: a blob's content hash and its
// length in bytes.
type Entry struct {
	Hash   Hash
	Length uint64
}

package media

import "fmt"

// MagicError is returned when a package does not begin with the magic marker.
type MagicError struct {
	// Bytes holds the bytes actually read, which may be fewer than the
	// marker length when the file is shorter than the marker.
	Bytes []byte
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("media: unexpected package magic bytes %x (%q)", e.Bytes, e.Bytes)
}

// ManifestIndexRangeError is returned when the manifest index field cannot be
// represented as an int on this platform.
type ManifestIndexRangeError struct {
	Index uint64
}

func (e *ManifestIndexRangeError) Error() string {
	return fmt.Sprintf("media: manifest index %d cannot be represented as int", e.Index)
}

// ManifestIndexError is returned when the manifest index falls outside the
// entry table.
type ManifestIndexError struct {
	Index int
}

func (e *ManifestIndexError) Error() string {
	return fmt.Sprintf("media: manifest index %d out of bounds of entry table", e.Index)
}

// HashOrderError is returned when an entry's hash is not strictly greater
// than its predecessor's. Hash names the offending entry.
type HashOrderError struct {
	Hash Hash
}

func (e *HashOrderError) Error() string {
	return fmt.Sprintf("media: package file hash %s out of order", e.Hash)
}

// DuplicateHashError is returned when two entries carry the same hash.
type DuplicateHashError struct {
	Hash Hash
}

func (e *DuplicateHashError) Error() string {
	return fmt.Sprintf("media: package file hash %s duplicated", e.Hash)
}

// LengthRangeError is returned when an entry's length cannot be represented
// as an int on this platform.
type LengthRangeError struct {
	Length uint64
}

func (e *LengthRangeError) Error() string {
	return fmt.Sprintf("media: package file length %d cannot be represented as int", e.Length)
}

// HashMismatchError is returned when a blob's contents do not hash to the
// value recorded in its entry.
type HashMismatchError struct {
	Expected Hash
	Actual   Hash
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("media: package file hash actually %s, expected %s", e.Actual, e.Expected)
}

// TrailingBytesError is returned when bytes remain after the final blob.
type TrailingBytesError struct {
	Trailing uint64
}

func (e *TrailingBytesError) Error() string {
	return fmt.Sprintf("media: package has %d trailing bytes", e.Trailing)
}

// ManifestDecodeError is returned when the manifest blob does not decode as
// a manifest.
type ManifestDecodeError struct {
	Err error
}

func (e *ManifestDecodeError) Error() string {
	return fmt.Sprintf("media: failed to deserialize manifest: %v", e.Err)
}

func (e *ManifestDecodeError) Unwrap() error { return e.Err }

// ManifestMissingError is returned when the manifest references blobs the
// package does not hold.
type ManifestMissingError struct {
	Missing int
}

func (e *ManifestMissingError) Error() string {
	return fmt.Sprintf("media: package missing %d files from manifest", e.Missing)
}

// ManifestExtraError is returned when the package holds blobs the manifest
// never references.
type ManifestExtraError struct {
	Extra int
}

func (e *ManifestExtraError) Error() string {
	return fmt.Sprintf("media: package contains %d extra files not accounted for in manifest", e.Extra)
}

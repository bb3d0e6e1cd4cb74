package media

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/meigma/media/internal/wire"
)

// Package is a loaded and verified package: every blob keyed by its content
// hash, plus the decoded manifest.
type Package struct {
	Files    map[Hash][]byte
	Manifest Manifest
}

// Load reads a package file into memory and verifies it completely: magic
// marker, entry table ordering, per-blob content hashes, exact byte
// consumption, and manifest agreement with the blob set. A nil error means
// every invariant held; no partially verified package is ever returned.
//
// Load buffers the whole file, so memory use scales with package size.
func Load(path string) (*Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := uint64(info.Size())

	r := bufio.NewReader(f)

	magic := make([]byte, len(wire.Magic))
	n, err := io.ReadFull(r, magic)
	switch {
	case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
		return nil, &MagicError{Bytes: magic[:n]}
	case err != nil:
		return nil, err
	case string(magic) != wire.Magic:
		return nil, &MagicError{Bytes: magic}
	}

	rawIndex, err := wire.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	if rawIndex > math.MaxInt {
		return nil, &ManifestIndexRangeError{Index: rawIndex}
	}
	manifestIndex := int(rawIndex)

	count, err := wire.ReadUint64(r)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, min(count, 1024))
	var prev Hash
	for i := uint64(0); i < count; i++ {
		raw, err := wire.ReadHash(r)
		if err != nil {
			return nil, err
		}
		h := Hash(raw)

		length, err := wire.ReadUint64(r)
		if err != nil {
			return nil, err
		}
		if length > math.MaxInt {
			return nil, &LengthRangeError{Length: length}
		}

		if i > 0 {
			switch bytes.Compare(h[:], prev[:]) {
			case -1:
				return nil, &HashOrderError{Hash: h}
			case 0:
				return nil, &DuplicateHashError{Hash: h}
			}
		}
		prev = h

		entries = append(entries, Entry{Hash: h, Length: length})
	}

	if manifestIndex >= len(entries) {
		return nil, &ManifestIndexError{Index: manifestIndex}
	}
	manifestHash := entries[manifestIndex].Hash

	// All header reads used io.ReadFull, so consumed bytes are exactly
	// computable without tracking the underlying offset.
	offset := uint64(len(wire.Magic)) + 2*wire.Uint64Size + count*(wire.HashSize+wire.Uint64Size)

	files := make(map[Hash][]byte, len(entries))
	for _, e := range entries {
		buf := make([]byte, e.Length)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("media: read blob %s: %w", e.Hash, err)
		}
		if actual := Sum(buf); actual != e.Hash {
			return nil, &HashMismatchError{Expected: e.Hash, Actual: actual}
		}
		files[e.Hash] = buf
		offset += e.Length
	}

	if offset != size {
		return nil, &TrailingBytesError{Trailing: size - offset}
	}

	manifest, err := DecodeManifest(files[manifestHash])
	if err != nil {
		return nil, err
	}
	if err := verifyManifest(manifest, manifestHash, files); err != nil {
		return nil, err
	}

	return &Package{Files: files, Manifest: manifest}, nil
}

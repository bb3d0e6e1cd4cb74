// Package testutil provides helpers for building test fixtures: raw package
// files assembled byte by byte, and file trees materialized on disk.
package testutil

import (
	"bytes"
	"testing"

	"github.com/meigma/media/internal/wire"
)

// Entry mirrors a package entry-table row without importing the root package.
type Entry struct {
	Hash   [wire.HashSize]byte
	Length uint64
}

// RawPackage assembles package file bytes exactly as given: entries are not
// sorted, lengths are not checked against blobs, and nothing is validated.
// Tests use it to craft valid and deliberately broken packages alike.
func RawPackage(tb testing.TB, manifestIndex uint64, entries []Entry, blobs [][]byte) []byte {
	tb.Helper()

	var buf bytes.Buffer
	buf.WriteString(wire.Magic)
	mustWriteUint64(tb, &buf, manifestIndex)
	mustWriteUint64(tb, &buf, uint64(len(entries)))
	for _, e := range entries {
		if err := wire.WriteHash(&buf, e.Hash); err != nil {
			tb.Fatalf("write hash: %v", err)
		}
		mustWriteUint64(tb, &buf, e.Length)
	}
	for _, b := range blobs {
		buf.Write(b)
	}
	return buf.Bytes()
}

func mustWriteUint64(tb testing.TB, buf *bytes.Buffer, v uint64) {
	tb.Helper()
	if err := wire.WriteUint64(buf, v); err != nil {
		tb.Fatalf("write u64: %v", err)
	}
}

package media

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/meigma/media/internal/wire"
)

// Save writes a package file holding the given source files plus the
// manifest.
//
// files maps logical slash-separated paths relative to root to pre-computed
// entries; Save trusts the recorded hashes and lengths and streams file
// contents straight from disk without re-reading them into memory. The
// manifest is encoded canonically, hashed, and stored as a blob like any
// other.
//
// Entries are written in ascending hash order, so packages built from equal
// inputs are byte-identical regardless of map iteration order.
func Save(files map[string]Entry, manifest Manifest, output, root string) error {
	data, err := EncodeManifest(manifest)
	if err != nil {
		return err
	}
	manifestEntry := Entry{Hash: Sum(data), Length: uint64(len(data))}

	paths := make(map[Hash]string, len(files))
	entries := make([]Entry, 0, len(files)+1)
	for p, e := range files {
		paths[e.Hash] = p
		entries = append(entries, e)
	}
	entries = append(entries, manifestEntry)

	slices.SortFunc(entries, func(a, b Entry) int {
		return bytes.Compare(a.Hash[:], b.Hash[:])
	})
	manifestIndex := slices.IndexFunc(entries, func(e Entry) bool {
		return e.Hash == manifestEntry.Hash
	})

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(wire.Magic); err != nil {
		return err
	}
	if err := wire.WriteUint64(w, uint64(manifestIndex)); err != nil {
		return err
	}
	if err := wire.WriteUint64(w, uint64(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if err := wire.WriteHash(w, e.Hash); err != nil {
			return err
		}
		if err := wire.WriteUint64(w, e.Length); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if e.Hash == manifestEntry.Hash {
			if _, err := w.Write(data); err != nil {
				return err
			}
			continue
		}
		src := filepath.Join(root, filepath.FromSlash(paths[e.Hash]))
		if err := copyBlob(w, src); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// copyBlob streams one source file into the package body.
func copyBlob(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("media: open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("media: copy %s: %w", path, err)
	}
	return nil
}

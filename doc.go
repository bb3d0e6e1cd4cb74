// Package media implements a content-addressed container format for static
// media bundles.
//
// A package file holds a set of blobs, each addressed by the BLAKE3 hash of
// its contents, plus one distinguished blob: a CBOR-encoded manifest
// describing how the blobs compose into a logical resource. Two manifest
// kinds exist: [App] maps logical paths to blobs (a static web bundle) and
// [Comic] orders blobs into a page sequence.
//
// On disk a package is laid out as:
//
//   - Magic marker: "MEDIA" followed by U+1F4E6 (9 bytes)
//   - Manifest index: u64 little-endian position of the manifest's entry
//   - Entry count: u64 little-endian
//   - Entry table: (hash [32]byte, length u64 little-endian) per blob,
//     strictly ascending by hash with no duplicates
//   - Blob contents: raw bytes concatenated in entry-table order
//
// [Load] reads and fully verifies a package; [Save] writes one. Manifest
// encoding is deterministic, so packages built from equal inputs are
// byte-identical.
//
// # Quick Start
//
// Load a package and resolve a logical path:
//
//	pkg, err := media.Load("viewer.pkg")
//	if err != nil {
//	    return err
//	}
//	contentType, data, ok := pkg.File("index.html")
//
// Build a package from a directory with the pack subpackage:
//
//	err := pack.Create(ctx, "./viewer", "viewer.pkg")
package media

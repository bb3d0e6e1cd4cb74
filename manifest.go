package media

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/fxamacker/cbor/v2"
)

// Manifest describes how a package's blobs compose into a logical resource.
//
// The set of manifest kinds is closed: adding one means adding a type here
// and a resolution branch to [Package.File].
type Manifest interface {
	// Type reports the kind of content the manifest describes.
	Type() Type

	// hashes yields every blob hash the manifest references.
	hashes() iter.Seq[Hash]
}

// Interface compliance.
var (
	_ Manifest = (*App)(nil)
	_ Manifest = (*Comic)(nil)
)

// App is the manifest of a path-addressed application bundle, such as a
// static web viewer. Handles names the content type the app presents.
type App struct {
	Handles Type
	Paths   map[string]Hash
}

func (a *App) Type() Type { return TypeApp }

func (a *App) hashes() iter.Seq[Hash] {
	return func(yield func(Hash) bool) {
		for _, h := range a.Paths {
			if !yield(h) {
				return
			}
		}
	}
}

// MarshalJSON encodes the manifest in its tagged form with hex hashes.
func (a *App) MarshalJSON() ([]byte, error) {
	return json.Marshal(appWire{Type: TypeApp, Handles: a.Handles, Paths: a.Paths})
}

// Comic is the manifest of an ordered page sequence addressed by index.
type Comic struct {
	Pages []Hash
}

func (c *Comic) Type() Type { return TypeComic }

func (c *Comic) hashes() iter.Seq[Hash] {
	return func(yield func(Hash) bool) {
		for _, h := range c.Pages {
			if !yield(h) {
				return
			}
		}
	}
}

// MarshalJSON encodes the manifest in its tagged form with hex hashes.
func (c *Comic) MarshalJSON() ([]byte, error) {
	return json.Marshal(comicWire{Type: TypeComic, Pages: c.Pages})
}

// appWire and comicWire are the tagged shapes shared by the CBOR and JSON
// encodings. The type field always serializes first in JSON; CBOR key order
// is fixed by the deterministic encoder.
type appWire struct {
	Type    Type            `cbor:"type" json:"type"`
	Handles Type            `cbor:"handles" json:"handles"`
	Paths   map[string]Hash `cbor:"paths" json:"paths"`
}

type comicWire struct {
	Type  Type   `cbor:"type" json:"type"`
	Pages []Hash `cbor:"pages" json:"pages"`
}

// encMode encodes manifests deterministically, so manifests with equal
// contents produce byte-identical blobs and therefore equal hashes.
var encMode = newEncMode()

func newEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

// EncodeManifest serializes a manifest to its canonical CBOR form.
func EncodeManifest(m Manifest) ([]byte, error) {
	switch m := m.(type) {
	case *App:
		return encMode.Marshal(appWire{Type: TypeApp, Handles: m.Handles, Paths: m.Paths})
	case *Comic:
		return encMode.Marshal(comicWire{Type: TypeComic, Pages: m.Pages})
	default:
		return nil, fmt.Errorf("media: unhandled manifest type %T", m)
	}
}

// DecodeManifest parses a CBOR-encoded manifest, dispatching on its type tag.
func DecodeManifest(data []byte) (Manifest, error) {
	var tag struct {
		Type Type `cbor:"type"`
	}
	if err := cbor.Unmarshal(data, &tag); err != nil {
		return nil, &ManifestDecodeError{Err: err}
	}

	switch tag.Type {
	case TypeApp:
		var w appWire
		if err := cbor.Unmarshal(data, &w); err != nil {
			return nil, &ManifestDecodeError{Err: err}
		}
		return &App{Handles: w.Handles, Paths: w.Paths}, nil
	case TypeComic:
		var w comicWire
		if err := cbor.Unmarshal(data, &w); err != nil {
			return nil, &ManifestDecodeError{Err: err}
		}
		return &Comic{Pages: w.Pages}, nil
	default:
		return nil, &ManifestDecodeError{Err: fmt.Errorf("unknown manifest type %q", tag.Type)}
	}
}

// verifyManifest checks that the manifest and the blob set agree exactly:
// every referenced hash (the manifest's own included) must be present, and
// no unreferenced blobs may remain. Missing blobs are reported before extra
// ones.
func verifyManifest(m Manifest, manifest Hash, files map[Hash][]byte) error {
	referenced := map[Hash]struct{}{manifest: {}}
	for h := range m.hashes() {
		referenced[h] = struct{}{}
	}

	missing := 0
	for h := range referenced {
		if _, ok := files[h]; !ok {
			missing++
		}
	}
	if missing > 0 {
		return &ManifestMissingError{Missing: missing}
	}

	extra := 0
	for h := range files {
		if _, ok := referenced[h]; !ok {
			extra++
		}
	}
	if extra > 0 {
		return &ManifestExtraError{Extra: extra}
	}
	return nil
}

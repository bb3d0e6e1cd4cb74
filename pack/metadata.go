package pack

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meigma/media"
)

// MetadataFile is the well-known metadata file name within a source
// directory.
const MetadataFile = "metadata.yaml"

// Metadata declares what a source directory contains.
type Metadata struct {
	// Type is the content type being packaged.
	Type media.Type `yaml:"type"`

	// Handles names the content type an app presents. Required for app
	// packages, forbidden otherwise.
	Handles media.Type `yaml:"handles,omitempty"`
}

// LoadMetadata reads and validates a metadata file. Unknown keys are
// rejected so typos fail loudly instead of silently shaping the package.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var meta Metadata
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&meta); err != nil {
		return nil, fmt.Errorf("pack: parse %s: %w", path, err)
	}

	if !meta.Type.Valid() {
		return nil, fmt.Errorf("pack: %s: unknown content type %q", path, meta.Type)
	}
	switch meta.Type {
	case media.TypeApp:
		if !meta.Handles.Valid() {
			return nil, fmt.Errorf("pack: %s: app packages must declare a valid handles type, got %q", path, meta.Handles)
		}
	case media.TypeComic:
		if meta.Handles != "" {
			return nil, fmt.Errorf("pack: %s: handles is only valid for app packages", path)
		}
	}
	return &meta, nil
}

// template captures how collected paths become a manifest once hashes are
// known. All path-level validation happens here, before any hashing work.
type template struct {
	typ     media.Type
	handles media.Type
	pages   []string
}

func (m *Metadata) template(root string, paths []string) (*template, error) {
	switch m.Type {
	case media.TypeApp:
		if !slices.Contains(paths, "index.html") {
			return nil, &MissingIndexError{Root: root}
		}
		return &template{typ: media.TypeApp, handles: m.Handles}, nil
	case media.TypeComic:
		pages, err := comicPages(root, paths)
		if err != nil {
			return nil, err
		}
		return &template{typ: media.TypeComic, pages: pages}, nil
	default:
		panic(fmt.Sprintf("pack: unhandled content type %q", m.Type))
	}
}

// manifest assembles the manifest from hashed files. Every path the
// template names is guaranteed to have been hashed.
func (t *template) manifest(files map[string]media.Entry) media.Manifest {
	switch t.typ {
	case media.TypeApp:
		paths := make(map[string]media.Hash, len(files))
		for p, e := range files {
			paths[p] = e.Hash
		}
		return &media.App{Handles: t.handles, Paths: paths}
	case media.TypeComic:
		pages := make([]media.Hash, len(t.pages))
		for i, p := range t.pages {
			e, ok := files[p]
			if !ok {
				panic(fmt.Sprintf("pack: page %s was not hashed", p))
			}
			pages[i] = e.Hash
		}
		return &media.Comic{Pages: pages}
	default:
		panic(fmt.Sprintf("pack: unhandled content type %q", t.typ))
	}
}

// comicPages orders page files by their numeric stems into a dense
// zero-based sequence. Non-numeric stems, numbers beyond u64, duplicate
// numbers, gaps, and empty sequences are all rejected.
func comicPages(root string, paths []string) ([]string, error) {
	byPage := make(map[uint64]string, len(paths))
	for _, p := range paths {
		base := path.Base(p)
		stem := strings.TrimSuffix(base, path.Ext(base))
		if !digits(stem) {
			return nil, &UnexpectedFileError{File: p, Type: media.TypeComic}
		}
		page, err := strconv.ParseUint(stem, 10, 64)
		if err != nil {
			return nil, &InvalidPageError{Path: p}
		}
		if _, ok := byPage[page]; ok {
			return nil, &PageDuplicateError{Page: page}
		}
		byPage[page] = p
	}
	if len(byPage) == 0 {
		return nil, &NoPagesError{Root: root}
	}

	pages := make([]string, len(byPage))
	for i := range pages {
		p, ok := byPage[uint64(i)]
		if !ok {
			return nil, &PageMissingError{Page: uint64(i)}
		}
		pages[i] = p
	}
	return pages, nil
}

// digits reports whether s is one or more ASCII digits.
func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package media

import (
	"fmt"
	"mime"
	"path"
	"strconv"
)

// File resolves a logical path against the package's manifest.
//
// For App packages the path is looked up verbatim in the path map and the
// content type follows from the path's extension. For Comic packages the
// path must be a decimal page index, and pages are always JPEG.
//
// ok reports whether the path resolves; a false return is a routine miss,
// not an error. File panics if the manifest references a blob the package
// does not hold, a state [Load] rules out.
func (p *Package) File(name string) (contentType string, data []byte, ok bool) {
	switch m := p.Manifest.(type) {
	case *App:
		h, ok := m.Paths[name]
		if !ok {
			return "", nil, false
		}
		return typeByExtension(name), p.blob(h), true
	case *Comic:
		page, err := strconv.ParseUint(name, 10, 64)
		if err != nil || page >= uint64(len(m.Pages)) {
			return "", nil, false
		}
		return "image/jpeg", p.blob(m.Pages[page]), true
	default:
		panic(fmt.Sprintf("media: unhandled manifest type %T", p.Manifest))
	}
}

// blob returns the contents of a manifest-referenced hash.
func (p *Package) blob(h Hash) []byte {
	data, ok := p.Files[h]
	if !ok {
		panic(fmt.Sprintf("media: package missing blob %s referenced by manifest", h))
	}
	return data
}

// typeByExtension maps a logical path to a MIME type, defaulting to a
// generic byte stream when the extension is unknown.
func typeByExtension(name string) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

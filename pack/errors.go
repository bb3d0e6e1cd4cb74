package pack

import (
	"fmt"

	"github.com/meigma/media"
)

// OutputInRootError is returned when the output path falls inside the
// source directory, which would package the output into itself.
type OutputInRootError struct {
	Output string
	Root   string
}

func (e *OutputInRootError) Error() string {
	return fmt.Sprintf("pack: output %s is inside root %s", e.Output, e.Root)
}

// OutputIsDirError is returned when the output path is an existing
// directory.
type OutputIsDirError struct {
	Output string
}

func (e *OutputIsDirError) Error() string {
	return fmt.Sprintf("pack: output %s is a directory", e.Output)
}

// MetadataMissingError is returned when the source directory has no
// metadata file.
type MetadataMissingError struct {
	Root string
}

func (e *MetadataMissingError) Error() string {
	return fmt.Sprintf("pack: root %s has no %s", e.Root, MetadataFile)
}

// MissingIndexError is returned when an app source tree lacks index.html.
type MissingIndexError struct {
	Root string
}

func (e *MissingIndexError) Error() string {
	return fmt.Sprintf("pack: app root %s has no index.html", e.Root)
}

// NoPagesError is returned when a comic source tree holds no pages.
type NoPagesError struct {
	Root string
}

func (e *NoPagesError) Error() string {
	return fmt.Sprintf("pack: comic root %s has no pages", e.Root)
}

// PageMissingError reports a gap in the comic page sequence.
type PageMissingError struct {
	Page uint64
}

func (e *PageMissingError) Error() string {
	return fmt.Sprintf("pack: comic page %d missing", e.Page)
}

// PageDuplicateError reports two files resolving to the same page number.
type PageDuplicateError struct {
	Page uint64
}

func (e *PageDuplicateError) Error() string {
	return fmt.Sprintf("pack: comic page %d duplicated", e.Page)
}

// UnexpectedFileError reports a file that does not belong in a package of
// this type.
type UnexpectedFileError struct {
	File string
	Type media.Type
}

func (e *UnexpectedFileError) Error() string {
	return fmt.Sprintf("pack: unexpected file %s in %s package", e.File, e.Type)
}

// InvalidPageError reports a page file whose numeric stem does not fit in
// a page number.
type InvalidPageError struct {
	Path string
}

func (e *InvalidPageError) Error() string {
	return fmt.Sprintf("pack: invalid page number in %s", e.Path)
}

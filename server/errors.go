package server

import (
	"fmt"

	"github.com/meigma/media"
)

// AppTypeError is returned when the package served as the app does not
// hold an app manifest.
type AppTypeError struct {
	Type media.Type
}

func (e *AppTypeError) Error() string {
	return fmt.Sprintf("server: app package holds %s content, not an app", e.Type)
}

// ContentTypeError is returned when the app package does not handle the
// content package's type.
type ContentTypeError struct {
	Content media.Type
	Handles media.Type
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("server: content package holds %s but the app handles %s", e.Content, e.Handles)
}

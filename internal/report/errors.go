package report

import (
	"errors"
	"fmt"
)

// RenderError is returned when the report artifact cannot be produced.
// No partial artifact is left behind when it is returned.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render report %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// IsRenderError reports whether err wraps a RenderError
func IsRenderError(err error) bool {
	var renderErr *RenderError
	return errors.As(err, &renderErr)
}

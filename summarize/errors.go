package summarize

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned before any extraction or network activity
// when no extractor is registered for the file's extension.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ExtractionError reports that a registered extractor failed on a document.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ServiceError wraps a failure from the summarization backend. The underlying
// error is surfaced untouched; there is no retry.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("summarization service: %v", e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

package domain

import (
	"errors"
	"fmt"
)

// NotReadyNotice is the fixed reply to chat submissions made before any
// successful "process documents" action.
const NotReadyNotice = "Please upload and process documents first!"

var (
	// ErrEmptyCorpus means no text survived extraction and chunking,
	// so there is nothing to index.
	ErrEmptyCorpus = errors.New("no text could be extracted from the uploaded documents")

	// ErrNotReady means documents have not been processed yet for this session.
	ErrNotReady = errors.New("documents have not been processed yet")

	// ErrUnsupportedFormat means no extraction rule matches the file.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrNoText means extraction produced only whitespace.
	ErrNoText = errors.New("no text content")
)

// ExtractionError reports why a single file could not contribute text.
// The caller logs it and continues with the remaining files.
type ExtractionError struct {
	Name   string
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s (%s): %v", e.Name, e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

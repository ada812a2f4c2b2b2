package knowledge

import "errors"

var (
	// ErrUnavailable means the knowledge resource cannot be reached or read.
	ErrUnavailable = errors.New("knowledge unavailable")
	// ErrNoDocuments means an ingest found nothing to index.
	ErrNoDocuments = errors.New("no knowledge documents found")
)

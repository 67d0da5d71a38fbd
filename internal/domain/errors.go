package domain

import "errors"

var (
	// ErrBadExtraction means the extractor's output could not be parsed
	// as the expected JSON record. A client error, never retried here.
	ErrBadExtraction = errors.New("invalid response format from AI model")

	// ErrTripNotFound means the referenced trip id is not in storage.
	ErrTripNotFound = errors.New("trip not found")
)

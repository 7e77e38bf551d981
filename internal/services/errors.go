package services

import "errors"

// Job data service errors
var (
	ErrDataNotLoaded = errors.New("dataset not loaded")
	ErrNoPostings    = errors.New("no postings match the requested filters")
	ErrInvalidFilter = errors.New("invalid filter")
)

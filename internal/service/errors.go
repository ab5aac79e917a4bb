package service

import "errors"

// Error taxonomy. Every error returned by DocumentService wraps at most one of these;
// the HTTP layer maps them with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("document not found")
	ErrExtraction = errors.New("extraction failed")
	ErrUpstream   = errors.New("completion failed")
)

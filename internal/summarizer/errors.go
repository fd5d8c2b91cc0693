package summarizer

import "errors"

var (
	ErrUnavailable = errors.New("summarizer is not configured")
	ErrEmptyResult = errors.New("summarizer returned no text")
)

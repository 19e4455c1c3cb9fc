package models

import "errors"

// Intake errors. They are returned synchronously to the uploader and never
// move the slot out of 'empty', so the upload can simply be retried.
var (
	ErrNoFileSubmitted     = errors.New("no file submitted")
	ErrNotValid            = errors.New("video already has a file")
	ErrFormatNotRecognised = errors.New("file format not recognised")
	ErrClipping            = errors.New("thumbnail extraction failed")
)

// EncodingError wraps whatever made an encode fail after the job was
// claimed. By the time a caller sees it the encoding's status is already
// persisted as 'error'.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return "encoding failed: " + e.Err.Error()
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

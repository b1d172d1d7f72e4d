package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when text or URL input is empty or whitespace only
	ErrEmptyInput = errors.New("empty input")

	// ErrImageDecode is returned when an upload is not a decodable image
	ErrImageDecode = errors.New("image decode failed")

	// ErrInvalidURL is returned when a URL has no parseable host
	ErrInvalidURL = errors.New("invalid URL")
)

// EmptyInputError reports which input field was empty
type EmptyInputError struct {
	Field string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, ErrEmptyInput)
}

// Is makes errors.Is(err, ErrEmptyInput) match
func (e *EmptyInputError) Is(target error) bool {
	return target == ErrEmptyInput
}

// ImageDecodeError wraps the underlying decoder failure
type ImageDecodeError struct {
	Filename string
	Err      error
}

func (e *ImageDecodeError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("%s: %v", ErrImageDecode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrImageDecode, e.Filename, e.Err)
}

// Is makes errors.Is(err, ErrImageDecode) match
func (e *ImageDecodeError) Is(target error) bool {
	return target == ErrImageDecode
}

func (e *ImageDecodeError) Unwrap() error {
	return e.Err
}

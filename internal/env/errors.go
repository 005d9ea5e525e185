package env

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrInvalidKey   = errors.New("invalid key")
	ErrFileNotFound = errors.New("file not found")
	ErrIOFailure    = errors.New("i/o failure")
)

// PatchError describes why a patch could not be applied.
type PatchError struct {
	Kind    error  // One of ErrInvalidKey, ErrFileNotFound, ErrIOFailure
	Path    string // The env file as given by the caller, may be empty
	Key     string
	Message string
	Err     error // Underlying cause, may be nil
}

func (e *PatchError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *PatchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func invalidKeyError(key, message string) error {
	return &PatchError{Kind: ErrInvalidKey, Key: key, Message: message}
}

func fileNotFoundError(path, resolved string, err error) error {
	return &PatchError{
		Kind:    ErrFileNotFound,
		Path:    path,
		Message: fmt.Sprintf("Environment file '%s' does not exist", resolved),
		Err:     err,
	}
}

func ioError(path string, err error) error {
	return &PatchError{
		Kind:    ErrIOFailure,
		Path:    path,
		Message: fmt.Sprintf("Error processing %s", path),
		Err:     err,
	}
}

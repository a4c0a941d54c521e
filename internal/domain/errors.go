package domain

import (
	"errors"
	"fmt"
)

// Decode errors: malformed caller parameters, fatal to the request.
var (
	// ErrMissingSearchID signals an absent q.id parameter.
	ErrMissingSearchID = errors.New("missing search definition id")
	// ErrMissingTokenText signals a token without text.
	ErrMissingTokenText = errors.New("missing token text")
	// ErrMissingFuzzyFlag signals a token without the fuzzy flag.
	ErrMissingFuzzyFlag = errors.New("missing fuzzy flag")
	// ErrIncompleteFuzzySpec signals a fuzzy token without var or prefix.
	ErrIncompleteFuzzySpec = errors.New("fuzzy token requires var and prefix")
	// ErrInvalidNumber signals a var or prefix that is not a non-negative integer.
	ErrInvalidNumber = errors.New("invalid number")
)

var (
	// ErrInvalidDefinition signals a search definition that violates its invariants.
	ErrInvalidDefinition = errors.New("invalid search definition")
	// ErrAddressSpaceExceeded signals more groups or tokens than the q.<d>.t.<d> scheme can address.
	ErrAddressSpaceExceeded = errors.New("address space exceeded")
	// ErrRecordNotFound signals a record id with nothing stored under it.
	ErrRecordNotFound = errors.New("record not found")
)

// DecodeError ties a decode sentinel to the parameter key that caused it.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	if e.Key == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Err.Error())
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NewDecodeError creates a decode error for key.
func NewDecodeError(key string, err error) error {
	return &DecodeError{Key: key, Err: err}
}

// IsDecodeError reports whether err was raised while decoding parameters.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

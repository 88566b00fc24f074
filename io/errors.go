package io

import "errors"

// Format errors. Load rejects files that fail any of these checks
// before reading the payload.
var (
	ErrInvalidMagic = errors.New("invalid magic bytes")
	ErrBadMetadata  = errors.New("malformed metadata block")
	ErrSizeMismatch = errors.New("element count does not match metadata")
)

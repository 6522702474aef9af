package core

import "errors"

// Common errors.
var (
	ErrNotFound         = errors.New("path does not exist")
	ErrInvalidType      = errors.New("invalid metadata type")
	ErrInvalidPlacement = errors.New("invalid inline placement")
	ErrSourceMismatch   = errors.New("text differs from the source the metadata was parsed from")
	ErrEmptyKey         = errors.New("metadata key cannot be empty")
	ErrKeyExists        = errors.New("metadata key already exists")
	ErrKeyNotFound      = errors.New("metadata key not found")
	ErrInvalidKey       = errors.New("invalid metadata key")
	ErrInvalidValue     = errors.New("invalid metadata value")
)

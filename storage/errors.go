package storage

import (
	"errors"
)

var (
	// ErrNotFound is returned when a requested key does not exist in the
	// store. Note: badger.ErrKeyNotFound is the error returned by the
	// badger API; modules in storage/badger and storage/badger/operation
	// both translate it to storage.ErrNotFound.
	ErrNotFound = errors.New("key not found")

	// ErrAlreadyExists is returned when inserting a key that exists.
	ErrAlreadyExists = errors.New("key already exists")
)

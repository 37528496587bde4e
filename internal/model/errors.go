package model

import "errors"

var (
	// ErrNotFound covers both a missing item id and an item owned by
	// someone else. The two cases are deliberately indistinguishable so
	// callers cannot probe for the existence of other users' items.
	ErrNotFound = errors.New("not found")

	ErrValidation = errors.New("validation error")

	// ErrStoreNotReady is returned while the backing store has not yet
	// been opened or has been closed.
	ErrStoreNotReady = errors.New("store not ready")
)

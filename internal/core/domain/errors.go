package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown section type or action.
	ErrUnsupportedType = errors.New("unsupported type")

	// History Errors.

	// ErrNothingToUndo indicates the history cursor is already at the oldest entry.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the history cursor is already at the newest entry.
	ErrNothingToRedo = errors.New("nothing to redo")

	// Section Errors.

	// ErrIndexOutOfRange indicates a reorder index outside the section list.
	ErrIndexOutOfRange = errors.New("index out of range")

	// Sharing and Storage Errors.

	// ErrInvalidShareLink indicates a share link payload could not be decoded.
	ErrInvalidShareLink = errors.New("invalid share link")

	// ErrStorageUnavailable indicates the persistence backend cannot be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

package odm

import "errors"

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

// ErrValidation is returned when a document fails its schema rules.
// Use errors.Is to detect it; the wrapped message lists the failing fields.
var ErrValidation = errors.New("validation failed")

// ErrInvalidID is returned when a caller-supplied ID cannot be parsed by
// the active storage backend (bad ObjectID hex, malformed UUID, ...).
var ErrInvalidID = errors.New("invalid document id")

// ErrEmptyCollection is returned when a schema is built without a
// collection name.
var ErrEmptyCollection = errors.New("empty collection name")

// ErrDuplicate is returned when an insert violates a unique index.
var ErrDuplicate = errors.New("duplicate document")

// ErrUnknownVirtual is returned when setting a virtual that was never
// registered, or one registered without a setter.
var ErrUnknownVirtual = errors.New("unknown virtual attribute")

// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// Handlers (HTTP layer) should not know or care which database they are
// talking to. By depending only on this interface:
//
//   - The production backend is MongoDB; local development and tests run
//     the same code against SQLite with zero handler changes.
//
//   - Writing tests = pass any backend that satisfies the interface.
//     No running daemon needed for unit tests.
//
// This is the Dependency Inversion Principle in practice.
package storage

import (
	"context"

	"github.com/mongolearn/lessons-api/internal/odm"
	"github.com/mongolearn/lessons-api/internal/types"
)

// Storage is the database contract. Any concrete type that implements ALL
// of these methods satisfies it implicitly — no "implements" keyword.
//
// Every method takes a context so callers control timeouts/cancellation.
// List methods take an *odm.Query; a nil query matches every document.
type Storage interface {
	// CreateLesson inserts a new lesson document and returns the
	// backend-generated ID.
	CreateLesson(ctx context.Context, lesson types.Lesson) (string, error)

	// GetLessonByID fetches one lesson. Returns odm.ErrNotFound if the ID
	// matches nothing, odm.ErrInvalidID if it cannot be parsed.
	GetLessonByID(ctx context.Context, id string) (types.Lesson, error)

	// GetLessons returns every lesson matching the query.
	// Returns an empty slice (not nil) when nothing matches.
	GetLessons(ctx context.Context, q *odm.Query) ([]types.Lesson, error)

	// UpdateLessonByID replaces the stored fields of an existing lesson
	// and returns the updated document.
	UpdateLessonByID(ctx context.Context, id string, lesson types.Lesson) (types.Lesson, error)

	// DeleteLessonByID removes a lesson permanently.
	DeleteLessonByID(ctx context.Context, id string) error

	// Contact operations mirror the lesson set.
	CreateContact(ctx context.Context, contact types.Contact) (string, error)
	GetContactByID(ctx context.Context, id string) (types.Contact, error)
	GetContacts(ctx context.Context, q *odm.Query) ([]types.Contact, error)
	UpdateContactByID(ctx context.Context, id string, contact types.Contact) (types.Contact, error)
	DeleteContactByID(ctx context.Context, id string) error

	// DropAll wipes both collections. Used by the seed command so re-runs
	// are idempotent.
	DropAll(ctx context.Context) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close(ctx context.Context) error
}

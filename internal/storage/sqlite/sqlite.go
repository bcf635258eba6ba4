// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite WHEN THE PRODUCTION STORE IS MONGO?
// ──────────────────────────────────────────────
// SQLite stores everything in a single file (or in memory). No daemon, no
// network, nothing to install beyond the driver. Handlers and tests run
// against it unchanged because they only see the storage.Storage
// interface; keywords are serialized as a JSON text column to fit the
// document shape into rows.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mongolearn/lessons-api/internal/config"
	"github.com/mongolearn/lessons-api/internal/odm"
	"github.com/mongolearn/lessons-api/internal/storage"
	"github.com/mongolearn/lessons-api/internal/types"

	// Side-effect import: registers the "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"
)

// A blank import of this package makes "sqlite" available to storage.Open.
func init() {
	storage.Register(config.DriverSQLite,
		func(_ context.Context, cfg *config.Config, _ *slog.Logger) (storage.Storage, error) {
			if err := storage.EnsureDir(cfg.Storage.Path); err != nil {
				return nil, fmt.Errorf("sqlite: create data dir: %w", err)
			}
			return New(cfg.Storage.Path)
		})
}

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is a connection pool, safe for concurrent use.
type SQLite struct {
	db *sql.DB
}

// New opens (or creates) the database at path and ensures both tables
// exist. Use "file:name?mode=memory&cache=shared" for an in-memory
// database in tests.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// IDs are UUID strings generated here, not autoincrement integers, so
	// the public ID shape stays opaque like the mongo backend's ObjectIDs.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS lessons (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			url        TEXT NOT NULL,
			keywords   TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS contacts (
			id         TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name  TEXT NOT NULL,
			title      TEXT NOT NULL DEFAULT '',
			age        INTEGER NOT NULL DEFAULT 0,
			party      TEXT NOT NULL DEFAULT '',
			phone      TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Lessons
// ─────────────────────────────────────────────────────────────────────────────

func (s *SQLite) CreateLesson(ctx context.Context, lesson types.Lesson) (string, error) {
	keywords, err := json.Marshal(keywordsOrEmpty(lesson.Keywords))
	if err != nil {
		return "", fmt.Errorf("CreateLesson: marshal keywords: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO lessons (id, title, url, keywords, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, lesson.Title, lesson.URL, string(keywords), now, now)
	if err != nil {
		return "", fmt.Errorf("CreateLesson: exec: %w", err)
	}
	return id, nil
}

func (s *SQLite) GetLessonByID(ctx context.Context, id string) (types.Lesson, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, url, keywords, created_at, updated_at
		 FROM lessons WHERE id = ? LIMIT 1`, id)

	lesson, err := scanLesson(row.Scan)
	if err == sql.ErrNoRows {
		return types.Lesson{}, odm.ErrNotFound
	}
	if err != nil {
		return types.Lesson{}, fmt.Errorf("GetLessonByID: %w", err)
	}
	return lesson, nil
}

func (s *SQLite) GetLessons(ctx context.Context, q *odm.Query) ([]types.Lesson, error) {
	where, args, tail := plan(q)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, url, keywords, created_at, updated_at FROM lessons`+where+tail,
		args...)
	if err != nil {
		return nil, fmt.Errorf("GetLessons: query: %w", err)
	}
	defer rows.Close()

	// Pre-allocate a non-nil slice: [] beats null in JSON responses.
	lessons := make([]types.Lesson, 0)
	for rows.Next() {
		lesson, err := scanLesson(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("GetLessons: scan row: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetLessons: rows iteration: %w", err)
	}
	return lessons, nil
}

func (s *SQLite) UpdateLessonByID(ctx context.Context, id string, lesson types.Lesson) (types.Lesson, error) {
	keywords, err := json.Marshal(keywordsOrEmpty(lesson.Keywords))
	if err != nil {
		return types.Lesson{}, fmt.Errorf("UpdateLessonByID: marshal keywords: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE lessons SET title = ?, url = ?, keywords = ?, updated_at = ? WHERE id = ?`,
		lesson.Title, lesson.URL, string(keywords), time.Now().UTC(), id)
	if err != nil {
		return types.Lesson{}, fmt.Errorf("UpdateLessonByID: exec: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.Lesson{}, odm.ErrNotFound
	}

	// Re-fetch so the caller gets exactly what is stored.
	return s.GetLessonByID(ctx, id)
}

func (s *SQLite) DeleteLessonByID(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteLessonByID: exec: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return odm.ErrNotFound
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Contacts
// ─────────────────────────────────────────────────────────────────────────────

func (s *SQLite) CreateContact(ctx context.Context, contact types.Contact) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, first_name, last_name, title, age, party, phone, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, contact.FirstName, contact.LastName, contact.Title,
		contact.Age, contact.Party, contact.Phone, now, now)
	if err != nil {
		return "", fmt.Errorf("CreateContact: exec: %w", err)
	}
	return id, nil
}

func (s *SQLite) GetContactByID(ctx context.Context, id string) (types.Contact, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, title, age, party, phone, created_at, updated_at
		 FROM contacts WHERE id = ? LIMIT 1`, id)

	var contact types.Contact
	err := row.Scan(&contact.ID, &contact.FirstName, &contact.LastName,
		&contact.Title, &contact.Age, &contact.Party, &contact.Phone,
		&contact.CreatedAt, &contact.UpdatedAt)
	if err == sql.ErrNoRows {
		return types.Contact{}, odm.ErrNotFound
	}
	if err != nil {
		return types.Contact{}, fmt.Errorf("GetContactByID: scan: %w", err)
	}
	return contact, nil
}

func (s *SQLite) GetContacts(ctx context.Context, q *odm.Query) ([]types.Contact, error) {
	where, args, tail := plan(q)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, title, age, party, phone, created_at, updated_at
		 FROM contacts`+where+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("GetContacts: query: %w", err)
	}
	defer rows.Close()

	contacts := make([]types.Contact, 0)
	for rows.Next() {
		var contact types.Contact
		if err := rows.Scan(&contact.ID, &contact.FirstName, &contact.LastName,
			&contact.Title, &contact.Age, &contact.Party, &contact.Phone,
			&contact.CreatedAt, &contact.UpdatedAt); err != nil {
			return nil, fmt.Errorf("GetContacts: scan row: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetContacts: rows iteration: %w", err)
	}
	return contacts, nil
}

func (s *SQLite) UpdateContactByID(ctx context.Context, id string, contact types.Contact) (types.Contact, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET first_name = ?, last_name = ?, title = ?, age = ?,
		 party = ?, phone = ?, updated_at = ? WHERE id = ?`,
		contact.FirstName, contact.LastName, contact.Title, contact.Age,
		contact.Party, contact.Phone, time.Now().UTC(), id)
	if err != nil {
		return types.Contact{}, fmt.Errorf("UpdateContactByID: exec: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.Contact{}, odm.ErrNotFound
	}
	return s.GetContactByID(ctx, id)
}

func (s *SQLite) DeleteContactByID(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteContactByID: exec: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return odm.ErrNotFound
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Maintenance
// ─────────────────────────────────────────────────────────────────────────────

// DropAll empties both tables. The seed command calls this so re-seeding
// is idempotent.
func (s *SQLite) DropAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM lessons`); err != nil {
		return fmt.Errorf("DropAll: lessons: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM contacts`); err != nil {
		return fmt.Errorf("DropAll: contacts: %w", err)
	}
	return nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close(_ context.Context) error {
	return s.db.Close()
}

// scanLesson reads one lessons row via the given Scan func, decoding the
// keywords JSON column. Works for both *sql.Row and *sql.Rows.
func scanLesson(scan func(dest ...any) error) (types.Lesson, error) {
	var lesson types.Lesson
	var keywords string
	if err := scan(&lesson.ID, &lesson.Title, &lesson.URL, &keywords,
		&lesson.CreatedAt, &lesson.UpdatedAt); err != nil {
		return types.Lesson{}, err
	}
	if err := json.Unmarshal([]byte(keywords), &lesson.Keywords); err != nil {
		return types.Lesson{}, fmt.Errorf("decode keywords: %w", err)
	}
	return lesson, nil
}

// keywordsOrEmpty keeps the stored column a JSON array, never "null".
func keywordsOrEmpty(k []string) []string {
	if k == nil {
		return []string{}
	}
	return k
}

// Package seed holds the fixture records and the routine that loads them.
// The fixtures live here (not in cmd/seed) so tests can assert that every
// record actually satisfies its schema.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mongolearn/lessons-api/internal/storage"
	"github.com/mongolearn/lessons-api/internal/types"
)

// Lessons returns the fixture lesson set.
func Lessons() []types.Lesson {
	return []types.Lesson{
		{
			Title:    "Declaring a Schema",
			URL:      "https://example.edu/lessons/declaring-a-schema",
			Keywords: []string{"schema", "modeling"},
		},
		{
			Title:    "Validation Rules",
			URL:      "https://example.edu/lessons/validation-rules",
			Keywords: []string{"schema", "validation"},
		},
		{
			Title:    "Virtual Attributes",
			URL:      "https://example.edu/lessons/virtual-attributes",
			Keywords: []string{"virtuals", "modeling"},
		},
		{
			Title:    "Building Queries",
			URL:      "https://example.edu/lessons/building-queries",
			Keywords: []string{"queries"},
		},
		{
			Title:    "Seeding a Database",
			URL:      "https://example.edu/lessons/seeding-a-database",
			Keywords: []string{"seeding", "tooling"},
		},
	}
}

// Contacts returns the fixture contact set. Long-dead statesmen, so the
// sample phone book can never be mistaken for real directory data.
func Contacts() []types.Contact {
	return []types.Contact{
		{
			FirstName: "Millard",
			LastName:  "Fillmore",
			Title:     "President",
			Age:       74,
			Party:     types.PartyWhig,
			Phone:     "+12025550113",
		},
		{
			FirstName: "Alexander",
			LastName:  "Hamilton",
			Title:     "Secretary of the Treasury",
			Age:       47,
			Party:     types.PartyFederalist,
			Phone:     "+12125550176",
		},
		{
			FirstName: "Theodore",
			LastName:  "Roosevelt",
			Title:     "President",
			Age:       60,
			Party:     types.PartyBullMoose,
			Phone:     "+12025550198",
		},
		{
			FirstName: "Henry",
			LastName:  "Clay",
			Title:     "Senator",
			Age:       75,
			Party:     types.PartyWhig,
		},
	}
}

// Run wipes both collections and loads the fixtures. Every record is
// validated through its schema before any write happens, so a bad fixture
// fails the whole run instead of half-seeding.
func Run(ctx context.Context, store storage.Storage, log *slog.Logger) error {
	lessons := Lessons()
	contacts := Contacts()

	for i := range lessons {
		if err := types.LessonSchema.Validate(&lessons[i]); err != nil {
			return fmt.Errorf("seed: lesson %q: %w", lessons[i].Title, err)
		}
	}
	for i := range contacts {
		if err := types.ContactSchema.Validate(&contacts[i]); err != nil {
			return fmt.Errorf("seed: contact %q: %w", contacts[i].FullName(), err)
		}
	}

	if err := store.DropAll(ctx); err != nil {
		return fmt.Errorf("seed: wipe: %w", err)
	}

	for _, lesson := range lessons {
		id, err := store.CreateLesson(ctx, lesson)
		if err != nil {
			return fmt.Errorf("seed: insert lesson %q: %w", lesson.Title, err)
		}
		log.Debug("seeded lesson", slog.String("id", id), slog.String("title", lesson.Title))
	}
	for _, contact := range contacts {
		id, err := store.CreateContact(ctx, contact)
		if err != nil {
			return fmt.Errorf("seed: insert contact %q: %w", contact.FullName(), err)
		}
		log.Debug("seeded contact", slog.String("id", id), slog.String("name", contact.FullName()))
	}

	log.Info("database seeded",
		slog.Int("lessons", len(lessons)),
		slog.Int("contacts", len(contacts)),
	)
	return nil
}

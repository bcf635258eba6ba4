package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/mongolearn/lessons-api/internal/odm"
	"github.com/mongolearn/lessons-api/internal/types"
)

// open returns an in-memory database scoped to the test. The shared-cache
// name keeps all connections in the pool on the same database.
func open(t *testing.T, name string) *SQLite {
	t.Helper()
	s, err := New("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestLessonCRUD(t *testing.T) {
	s := open(t, "lessoncrud")
	ctx := context.Background()

	id, err := s.CreateLesson(ctx, types.Lesson{
		Title:    "Declaring a Schema",
		URL:      "https://example.edu/lessons/declaring-a-schema",
		Keywords: []string{"schema", "modeling"},
	})
	if err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	if id == "" {
		t.Fatal("create lesson returned empty id")
	}

	got, err := s.GetLessonByID(ctx, id)
	if err != nil {
		t.Fatalf("get lesson: %v", err)
	}
	if got.Title != "Declaring a Schema" {
		t.Errorf("title = %q, want %q", got.Title, "Declaring a Schema")
	}
	if len(got.Keywords) != 2 || got.Keywords[0] != "schema" {
		t.Errorf("keywords = %v, want [schema modeling]", got.Keywords)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not set on create")
	}

	updated, err := s.UpdateLessonByID(ctx, id, types.Lesson{
		Title: "Declaring a Schema, Revised",
		URL:   "https://example.edu/lessons/declaring-a-schema-2",
	})
	if err != nil {
		t.Fatalf("update lesson: %v", err)
	}
	if updated.Title != "Declaring a Schema, Revised" {
		t.Errorf("updated title = %q", updated.Title)
	}
	if len(updated.Keywords) != 0 {
		t.Errorf("updated keywords = %v, want empty", updated.Keywords)
	}

	if err := s.DeleteLessonByID(ctx, id); err != nil {
		t.Fatalf("delete lesson: %v", err)
	}
	if _, err := s.GetLessonByID(ctx, id); !errors.Is(err, odm.ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}
}

func TestLessonNotFoundSentinels(t *testing.T) {
	s := open(t, "lessonmissing")
	ctx := context.Background()

	if _, err := s.GetLessonByID(ctx, "nope"); !errors.Is(err, odm.ErrNotFound) {
		t.Errorf("get: err = %v, want ErrNotFound", err)
	}
	if _, err := s.UpdateLessonByID(ctx, "nope", types.Lesson{Title: "x", URL: "https://x"}); !errors.Is(err, odm.ErrNotFound) {
		t.Errorf("update: err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteLessonByID(ctx, "nope"); !errors.Is(err, odm.ErrNotFound) {
		t.Errorf("delete: err = %v, want ErrNotFound", err)
	}
}

func TestGetLessonsFiltering(t *testing.T) {
	s := open(t, "lessonfilter")
	ctx := context.Background()

	fixtures := []types.Lesson{
		{Title: "Schemas", URL: "https://x/1", Keywords: []string{"schema", "modeling"}},
		{Title: "Queries", URL: "https://x/2", Keywords: []string{"queries"}},
		{Title: "Virtuals", URL: "https://x/3", Keywords: []string{"modeling"}},
	}
	for _, lesson := range fixtures {
		if _, err := s.CreateLesson(ctx, lesson); err != nil {
			t.Fatalf("create %q: %v", lesson.Title, err)
		}
	}

	t.Run("NilQueryReturnsAll", func(t *testing.T) {
		all, err := s.GetLessons(ctx, nil)
		if err != nil {
			t.Fatalf("get lessons: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("got %d lessons, want 3", len(all))
		}
	})

	t.Run("KeywordContainment", func(t *testing.T) {
		q := odm.NewQuery().Where("keywords", odm.OpEq, "modeling")
		got, err := s.GetLessons(ctx, q)
		if err != nil {
			t.Fatalf("get lessons: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d lessons, want 2", len(got))
		}
	})

	t.Run("SortAndLimit", func(t *testing.T) {
		q := odm.NewQuery().Sort("title", odm.Asc).Limit(2)
		got, err := s.GetLessons(ctx, q)
		if err != nil {
			t.Fatalf("get lessons: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d lessons, want 2", len(got))
		}
		if got[0].Title != "Queries" || got[1].Title != "Schemas" {
			t.Errorf("order = [%s %s], want [Queries Schemas]", got[0].Title, got[1].Title)
		}
	})

	t.Run("Skip", func(t *testing.T) {
		q := odm.NewQuery().Sort("title", odm.Asc).Skip(2)
		got, err := s.GetLessons(ctx, q)
		if err != nil {
			t.Fatalf("get lessons: %v", err)
		}
		if len(got) != 1 || got[0].Title != "Virtuals" {
			t.Errorf("got %v, want just Virtuals", got)
		}
	})

	t.Run("NoMatchIsEmptySliceNotNil", func(t *testing.T) {
		q := odm.NewQuery().Where("keywords", odm.OpEq, "nonexistent")
		got, err := s.GetLessons(ctx, q)
		if err != nil {
			t.Fatalf("get lessons: %v", err)
		}
		if got == nil {
			t.Error("expected empty slice, got nil")
		}
		if len(got) != 0 {
			t.Errorf("got %d lessons, want 0", len(got))
		}
	})
}

func TestContactCRUDAndFiltering(t *testing.T) {
	s := open(t, "contactcrud")
	ctx := context.Background()

	fixtures := []types.Contact{
		{FirstName: "Millard", LastName: "Fillmore", Age: 74, Party: types.PartyWhig},
		{FirstName: "Henry", LastName: "Clay", Age: 75, Party: types.PartyWhig},
		{FirstName: "Alexander", LastName: "Hamilton", Age: 47, Party: types.PartyFederalist},
	}
	ids := make([]string, 0, len(fixtures))
	for _, contact := range fixtures {
		id, err := s.CreateContact(ctx, contact)
		if err != nil {
			t.Fatalf("create contact: %v", err)
		}
		ids = append(ids, id)
	}

	got, err := s.GetContactByID(ctx, ids[0])
	if err != nil {
		t.Fatalf("get contact: %v", err)
	}
	if got.FullName() != "Millard Fillmore" {
		t.Errorf("full name = %q", got.FullName())
	}

	whigs, err := s.GetContacts(ctx, odm.NewQuery().
		Where("party", odm.OpEq, types.PartyWhig).
		Sort("last_name", odm.Asc))
	if err != nil {
		t.Fatalf("get whigs: %v", err)
	}
	if len(whigs) != 2 {
		t.Fatalf("got %d whigs, want 2", len(whigs))
	}
	if whigs[0].LastName != "Clay" {
		t.Errorf("first whig = %s, want Clay", whigs[0].LastName)
	}

	elders, err := s.GetContacts(ctx, odm.NewQuery().Where("age", odm.OpGte, 70))
	if err != nil {
		t.Fatalf("get elders: %v", err)
	}
	if len(elders) != 2 {
		t.Errorf("got %d contacts aged 70+, want 2", len(elders))
	}

	updated, err := s.UpdateContactByID(ctx, ids[2], types.Contact{
		FirstName: "Alex", LastName: "Hamilton", Age: 48, Party: types.PartyFederalist,
	})
	if err != nil {
		t.Fatalf("update contact: %v", err)
	}
	if updated.FirstName != "Alex" || updated.Age != 48 {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := s.DeleteContactByID(ctx, ids[1]); err != nil {
		t.Fatalf("delete contact: %v", err)
	}
	if _, err := s.GetContactByID(ctx, ids[1]); !errors.Is(err, odm.ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}
}

func TestDropAll(t *testing.T) {
	s := open(t, "dropall")
	ctx := context.Background()

	if _, err := s.CreateLesson(ctx, types.Lesson{Title: "x", URL: "https://x"}); err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	if _, err := s.CreateContact(ctx, types.Contact{FirstName: "a", LastName: "b"}); err != nil {
		t.Fatalf("create contact: %v", err)
	}

	if err := s.DropAll(ctx); err != nil {
		t.Fatalf("drop all: %v", err)
	}

	lessons, err := s.GetLessons(ctx, nil)
	if err != nil {
		t.Fatalf("get lessons: %v", err)
	}
	contacts, err := s.GetContacts(ctx, nil)
	if err != nil {
		t.Fatalf("get contacts: %v", err)
	}
	if len(lessons) != 0 || len(contacts) != 0 {
		t.Errorf("after drop: %d lessons, %d contacts, want 0 and 0", len(lessons), len(contacts))
	}
}

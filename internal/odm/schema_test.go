package odm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mongolearn/lessons-api/internal/odm"
)

// note is a minimal document used to exercise the schema machinery
// without dragging in the real domain models.
type note struct {
	Title string `validate:"required"`
	Link  string `validate:"omitempty,url"`
	Score int    `validate:"gte=0,lte=10"`
}

func (note) CollectionName() string { return "notes" }

func TestNewSchemaPanicsOnEmptyCollection(t *testing.T) {
	assert.PanicsWithError(t, odm.ErrEmptyCollection.Error(), func() {
		odm.NewSchema("")
	})
}

func TestSchemaValidate(t *testing.T) {
	schema := odm.NewSchema("notes")

	t.Run("Valid", func(t *testing.T) {
		err := schema.Validate(&note{Title: "ok", Link: "https://example.com", Score: 5})
		assert.NoError(t, err)
	})

	t.Run("MissingRequired", func(t *testing.T) {
		err := schema.Validate(&note{Score: 5})
		require.Error(t, err)
		assert.True(t, errors.Is(err, odm.ErrValidation))
		assert.Contains(t, err.Error(), "field Title is required")
	})

	t.Run("BadURL", func(t *testing.T) {
		err := schema.Validate(&note{Title: "ok", Link: "not a url"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field Link must be a valid URL")
	})

	t.Run("OutOfRange", func(t *testing.T) {
		err := schema.Validate(&note{Title: "ok", Score: 11})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field Score must be at most 10")
	})

	t.Run("MultipleFailuresAllReported", func(t *testing.T) {
		err := schema.Validate(&note{Link: "nope", Score: -1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Title")
		assert.Contains(t, err.Error(), "Link")
		assert.Contains(t, err.Error(), "Score")
	})
}

func TestSchemaValidateDoesNotMutate(t *testing.T) {
	schema := odm.NewSchema("notes")
	doc := note{Title: "", Link: "bad", Score: 3}
	before := doc

	_ = schema.Validate(&doc)

	assert.Equal(t, before, doc)
}

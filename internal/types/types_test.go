package types_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mongolearn/lessons-api/internal/odm"
	"github.com/mongolearn/lessons-api/internal/types"
)

func validContact() types.Contact {
	return types.Contact{
		FirstName: "Millard",
		LastName:  "Fillmore",
		Title:     "President",
		Age:       74,
		Party:     types.PartyWhig,
		Phone:     "+12025550113",
	}
}

func TestLessonSchema(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		lesson := types.Lesson{
			Title:    "Declaring a Schema",
			URL:      "https://example.edu/lessons/declaring-a-schema",
			Keywords: []string{"schema"},
		}
		assert.NoError(t, types.LessonSchema.Validate(&lesson))
	})

	t.Run("MissingTitle", func(t *testing.T) {
		lesson := types.Lesson{URL: "https://example.edu/x"}
		err := types.LessonSchema.Validate(&lesson)
		require.Error(t, err)
		assert.True(t, errors.Is(err, odm.ErrValidation))
		assert.Contains(t, err.Error(), "field Title is required")
	})

	t.Run("BadURL", func(t *testing.T) {
		lesson := types.Lesson{Title: "x", URL: "example dot edu"}
		err := types.LessonSchema.Validate(&lesson)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field URL must be a valid URL")
	})
}

func TestContactSchema(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		c := validContact()
		assert.NoError(t, types.ContactSchema.Validate(&c))
	})

	t.Run("OptionalFieldsMayBeEmpty", func(t *testing.T) {
		c := types.Contact{FirstName: "Henry", LastName: "Clay"}
		assert.NoError(t, types.ContactSchema.Validate(&c))
	})

	t.Run("UnknownParty", func(t *testing.T) {
		c := validContact()
		c.Party = "Monster Raving Loony"
		err := types.ContactSchema.Validate(&c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field Party must be one of")
	})

	t.Run("PartyWithSpaceIsAccepted", func(t *testing.T) {
		c := validContact()
		c.Party = types.PartyBullMoose
		assert.NoError(t, types.ContactSchema.Validate(&c))
	})

	t.Run("BadPhone", func(t *testing.T) {
		c := validContact()
		c.Phone = "555-0113"
		err := types.ContactSchema.Validate(&c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field Phone must be a phone number")
	})

	t.Run("ImpossibleAge", func(t *testing.T) {
		c := validContact()
		c.Age = 200
		err := types.ContactSchema.Validate(&c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field Age must be at most 120")
	})
}

func TestFullName(t *testing.T) {
	c := types.Contact{FirstName: "Theodore", LastName: "Roosevelt"}
	assert.Equal(t, "Theodore Roosevelt", c.FullName())

	c = types.Contact{FirstName: "Cher"}
	assert.Equal(t, "Cher", c.FullName())
}

func TestSetFullName(t *testing.T) {
	t.Run("FirstAndLast", func(t *testing.T) {
		var c types.Contact
		c.SetFullName("Alexander Hamilton")
		assert.Equal(t, "Alexander", c.FirstName)
		assert.Equal(t, "Hamilton", c.LastName)
	})

	t.Run("ExtraWordsGoToLastName", func(t *testing.T) {
		var c types.Contact
		c.SetFullName("Martin Van Buren")
		assert.Equal(t, "Martin", c.FirstName)
		assert.Equal(t, "Van Buren", c.LastName)
	})

	t.Run("SingleWord", func(t *testing.T) {
		c := types.Contact{FirstName: "old", LastName: "old"}
		c.SetFullName("Cher")
		assert.Equal(t, "Cher", c.FirstName)
		assert.Equal(t, "", c.LastName)
	})
}

func TestFullNameVirtual(t *testing.T) {
	c := validContact()

	virtuals := types.ContactSchema.ApplyVirtuals(&c)
	assert.Equal(t, "Millard Fillmore", virtuals[types.VirtualFullName])

	require.NoError(t,
		types.ContactSchema.SetVirtual(&c, types.VirtualFullName, "Henry Clay"))
	assert.Equal(t, "Henry", c.FirstName)
	assert.Equal(t, "Clay", c.LastName)

	err := types.ContactSchema.SetVirtual(&c, types.VirtualFullName, 42)
	assert.True(t, errors.Is(err, odm.ErrValidation))
}

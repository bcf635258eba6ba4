// Package odm is a small object-document mapping layer: it gives plain Go
// structs the pieces a document database does not provide on its own —
// declared validation rules, computed (virtual) attributes, and a
// storage-agnostic query builder that each backend plans into its own
// native filter format.
//
// The package never talks to a database itself. Storage adapters consume
// Query values and translate them; handlers call Schema.Validate before
// anything is persisted.
package odm

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Document is implemented by every persisted model.
// CollectionName returns the collection (or table) documents live in.
type Document interface {
	CollectionName() string
}

// Schema holds per-collection metadata: the collection name, the shared
// validator instance, and any registered virtual attributes.
//
// Build one Schema per model at package init and reuse it — the validator
// caches struct metadata, so a shared instance is much cheaper than
// calling validator.New() per request.
type Schema struct {
	collection string
	validate   *validator.Validate
	virtuals   []Virtual
}

// NewSchema returns a Schema for the given collection.
// Panics on an empty name: schemas are built at init time and an empty
// collection is a programming error, not a runtime condition.
func NewSchema(collection string) *Schema {
	if collection == "" {
		panic(ErrEmptyCollection)
	}
	return &Schema{
		collection: collection,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Collection returns the collection name the schema was built with.
func (s *Schema) Collection() string { return s.collection }

// Validate checks the document against its validate:"..." struct tags.
// On failure it returns an error wrapping ErrValidation whose message
// lists every failing field, one clause per rule.
func (s *Schema) Validate(doc Document) error {
	err := s.validate.Struct(doc)
	if err == nil {
		return nil
	}

	validateErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError: the caller passed something that is not
		// a struct. Treat it the same as a rule failure.
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	msgs := make([]string, 0, len(validateErrs))
	for _, fe := range validateErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, ", "))
}

// fieldMessage renders a single rule failure as a plain sentence.
func fieldMessage(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("field %s is required", fe.Field())
	case "url":
		return fmt.Sprintf("field %s must be a valid URL", fe.Field())
	case "email":
		return fmt.Sprintf("field %s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("field %s must be one of: %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("field %s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("field %s must be at most %s", fe.Field(), fe.Param())
	case "e164":
		return fmt.Sprintf("field %s must be a phone number in E.164 form", fe.Field())
	default:
		return fmt.Sprintf("field %s is invalid", fe.Field())
	}
}

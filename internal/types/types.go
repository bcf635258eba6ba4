// Package types holds the shared data models. Keeping them in one place
// prevents import cycles — handlers, storage, and the odm schemas can all
// import types without depending on each other.
package types

import (
	"strings"
	"time"

	"github.com/mongolearn/lessons-api/internal/odm"
)

// Lesson is a published lesson: a title, the URL it lives at, and the
// keywords it is indexed under.
//
// Struct tags, outermost first:
//   - json:"..."     — the field name on the API surface
//   - bson:"..."     — the field name inside the document store
//   - validate:"..." — rules enforced by the lesson schema before any write
type Lesson struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title" validate:"required"`
	URL       string    `json:"url" bson:"url" validate:"required,url"`
	Keywords  []string  `json:"keywords" bson:"keywords"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CollectionName satisfies odm.Document.
func (Lesson) CollectionName() string { return "lessons" }

// Parties a contact may belong to. Kept deliberately antique so nobody
// mistakes the sample data for live records.
const (
	PartyWhig       = "Whig"
	PartyFederalist = "Federalist"
	PartyBullMoose  = "Bull Moose"
)

// Contact is the address-book record used throughout the examples.
// FirstName and LastName are stored; the public full_name attribute is a
// virtual computed from them (see ContactSchema).
type Contact struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	FirstName string    `json:"first_name" bson:"first_name" validate:"required"`
	LastName  string    `json:"last_name" bson:"last_name" validate:"required"`
	Title     string    `json:"title" bson:"title"`
	Age       int       `json:"age" bson:"age" validate:"gte=0,lte=120"`
	Party     string    `json:"party,omitempty" bson:"party,omitempty" validate:"omitempty,oneof=Whig Federalist 'Bull Moose'"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CollectionName satisfies odm.Document.
func (Contact) CollectionName() string { return "contacts" }

// FullName joins the stored name fields. Getter for the full_name virtual.
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// SetFullName splits a "First Last" string back into the stored fields.
// Everything after the first space becomes the last name; a single word
// becomes the first name with an empty last name.
func (c *Contact) SetFullName(full string) {
	full = strings.TrimSpace(full)
	first, last, found := strings.Cut(full, " ")
	c.FirstName = first
	if found {
		c.LastName = strings.TrimSpace(last)
	} else {
		c.LastName = ""
	}
}

// VirtualFullName is the wire name of the contact's computed name field.
const VirtualFullName = "full_name"

// Package-level schemas. Built once; the validator caches struct metadata,
// so these are shared by handlers, storage, and the seed command.
var (
	LessonSchema = odm.NewSchema(Lesson{}.CollectionName())

	ContactSchema = odm.NewSchema(Contact{}.CollectionName()).
			Virtual(VirtualFullName,
			func(doc odm.Document) any {
				return doc.(*Contact).FullName()
			},
			func(doc odm.Document, value any) error {
				s, ok := value.(string)
				if !ok {
					return odm.ErrValidation
				}
				doc.(*Contact).SetFullName(s)
				return nil
			})
)

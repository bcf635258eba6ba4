package odm

import "fmt"

// Getter computes a virtual attribute's value from the stored fields.
type Getter func(doc Document) any

// Setter absorbs a client-supplied value back into the stored fields.
// A virtual may be read-only, in which case the setter is nil.
type Setter func(doc Document, value any) error

// Virtual is a named, non-persisted attribute derived from stored fields.
// The classic example: a full_name virtual whose getter joins first and
// last name and whose setter splits "First Last" back apart.
type Virtual struct {
	Name string
	Get  Getter
	Set  Setter
}

// Virtual registers a computed attribute on the schema. The setter may be
// nil for read-only virtuals. Registration happens at init time alongside
// NewSchema; the method is not safe for concurrent use.
func (s *Schema) Virtual(name string, get Getter, set Setter) *Schema {
	s.virtuals = append(s.virtuals, Virtual{Name: name, Get: get, Set: set})
	return s
}

// Virtuals returns the registered virtuals in registration order.
func (s *Schema) Virtuals() []Virtual { return s.virtuals }

// ApplyVirtuals evaluates every getter against doc and returns the
// computed values keyed by virtual name. Handlers merge the map into API
// responses; nothing is ever written to storage.
func (s *Schema) ApplyVirtuals(doc Document) map[string]any {
	if len(s.virtuals) == 0 {
		return nil
	}
	out := make(map[string]any, len(s.virtuals))
	for _, v := range s.virtuals {
		out[v.Name] = v.Get(doc)
	}
	return out
}

// SetVirtual routes a value through the named virtual's setter, mutating
// the stored fields on doc. Returns ErrUnknownVirtual for names that were
// never registered or that have no setter.
func (s *Schema) SetVirtual(doc Document, name string, value any) error {
	for _, v := range s.virtuals {
		if v.Name != name {
			continue
		}
		if v.Set == nil {
			return fmt.Errorf("%w: %s is read-only", ErrUnknownVirtual, name)
		}
		return v.Set(doc, value)
	}
	return fmt.Errorf("%w: %s", ErrUnknownVirtual, name)
}

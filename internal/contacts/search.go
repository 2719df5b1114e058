package contacts

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
)

// Field restricts a search to a single contact field.
type Field string

const (
	FieldAny      Field = ""
	FieldName     Field = "name"
	FieldPhone    Field = "phone"
	FieldEmail    Field = "email"
	FieldCategory Field = "category"
)

// ParseField parses a search field name. "any", "all" and the empty string
// search every field.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldAny, "any", "all":
		return FieldAny, nil
	case FieldName, FieldPhone, FieldEmail, FieldCategory:
		return f, nil
	}
	return "", fmt.Errorf("%w: cannot search by %q", kerrors.ErrValidation, s)
}

// Query is a case-insensitive substring search.
type Query struct {
	Text  string
	Field Field
}

// Matches reports whether c satisfies the query.
func (q Query) Matches(c Contact) bool {
	needle := strings.ToLower(q.Text)
	contains := func(v string) bool {
		return strings.Contains(strings.ToLower(v), needle)
	}

	switch q.Field {
	case FieldName:
		return contains(c.Name)
	case FieldPhone:
		return contains(c.Phone)
	case FieldEmail:
		return contains(c.Email)
	case FieldCategory:
		return contains(string(c.Category))
	}
	return contains(c.Name) || contains(c.Phone) || contains(c.Email) || contains(string(c.Category))
}

// Search returns every contact matching q, in insertion order.
func (s *Store) Search(q Query) []Contact {
	return s.Filter(q.Matches)
}

package contacts

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
	"github.com/PolarWolf314/rolodex/internal/utils"
)

// ID identifies a contact within a Store.
type ID uint64

// String returns the decimal form of the id.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses a decimal contact id. Zero is never a valid id.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: invalid contact id %q", kerrors.ErrValidation, s)
	}
	return ID(n), nil
}

// Category tags a contact with the relationship it represents.
type Category string

const (
	CategoryGeneral Category = "general"
	CategoryFamily  Category = "family"
	CategoryFriend  Category = "friend"
	CategoryWork    Category = "work"
	CategoryOther   Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryGeneral, CategoryFamily, CategoryFriend, CategoryWork, CategoryOther}

// ParseCategory parses a category tag case-insensitively. An empty tag is
// the general category.
func ParseCategory(s string) (Category, error) {
	tag := Category(strings.ToLower(strings.TrimSpace(s)))
	if tag == "" {
		return CategoryGeneral, nil
	}
	for _, c := range Categories {
		if c == tag {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", kerrors.ErrValidation, s)
}

// Contact is a single addressable record in the store.
type Contact struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address,omitempty"`
	Category  Category  `json:"category"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Equal reports whether two contacts hold the same values field for field.
func (c Contact) Equal(o Contact) bool {
	return c.ID == o.ID &&
		c.Name == o.Name &&
		c.Phone == o.Phone &&
		c.Email == o.Email &&
		c.Address == o.Address &&
		c.Category == o.Category &&
		c.Notes == o.Notes &&
		c.CreatedAt.Equal(o.CreatedAt) &&
		c.UpdatedAt.Equal(o.UpdatedAt)
}

// Validate checks the fields a caller may supply. It does not look at the
// id or timestamps, which the Store owns.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", kerrors.ErrValidation)
	}
	if c.Email != "" && !utils.IsValidEmail(c.Email) {
		return fmt.Errorf("%w: invalid email %q", kerrors.ErrValidation, c.Email)
	}
	if _, err := ParseCategory(string(c.Category)); err != nil {
		return err
	}
	for _, f := range []struct{ name, value string }{
		{"name", c.Name}, {"phone", c.Phone}, {"email", c.Email},
		{"address", c.Address}, {"notes", c.Notes},
	} {
		if !utf8.ValidString(f.value) {
			return fmt.Errorf("%w: %s is not valid UTF-8", kerrors.ErrValidation, f.name)
		}
		if strings.ContainsRune(f.value, '\r') {
			return fmt.Errorf("%w: %s contains a carriage return", kerrors.ErrValidation, f.name)
		}
	}
	return nil
}

// lineEndings turns CRLF and lone CR into LF. Stored text only ever holds
// LF so that every codec reproduces it exactly.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// normalize trims user input, converts line endings and resolves the
// category tag.
func (c Contact) normalize() Contact {
	clean := func(v string) string {
		return strings.TrimSpace(lineEndings.Replace(v))
	}
	c.Name = clean(c.Name)
	c.Phone = clean(c.Phone)
	c.Email = clean(c.Email)
	c.Address = clean(c.Address)
	c.Notes = clean(c.Notes)
	if category, err := ParseCategory(string(c.Category)); err == nil {
		c.Category = category
	}
	return c
}

// Fields is a partial update. Nil fields are left unchanged.
type Fields struct {
	Name     *string
	Phone    *string
	Email    *string
	Address  *string
	Category *Category
	Notes    *string
}

// StringField returns a pointer to v for use in Fields.
func StringField(v string) *string {
	return &v
}

// CategoryField returns a pointer to c for use in Fields.
func CategoryField(c Category) *Category {
	return &c
}

// IsEmpty reports whether the patch changes nothing.
func (f Fields) IsEmpty() bool {
	return f.Name == nil && f.Phone == nil && f.Email == nil &&
		f.Address == nil && f.Category == nil && f.Notes == nil
}

// SetByName sets the field named by key, using the same names the search
// prompt accepts plus address and notes.
func (f *Fields) SetByName(key, value string) error {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "name":
		f.Name = StringField(value)
	case "phone":
		f.Phone = StringField(value)
	case "email":
		f.Email = StringField(value)
	case "address":
		f.Address = StringField(value)
	case "notes":
		f.Notes = StringField(value)
	case "category":
		category, err := ParseCategory(value)
		if err != nil {
			return err
		}
		f.Category = CategoryField(category)
	default:
		return fmt.Errorf("%w: unknown field %q", kerrors.ErrValidation, key)
	}
	return nil
}

func (f Fields) apply(c Contact) Contact {
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.Phone != nil {
		c.Phone = *f.Phone
	}
	if f.Email != nil {
		c.Email = *f.Email
	}
	if f.Address != nil {
		c.Address = *f.Address
	}
	if f.Category != nil {
		c.Category = *f.Category
	}
	if f.Notes != nil {
		c.Notes = *f.Notes
	}
	return c
}

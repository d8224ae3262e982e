package links

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Category is the kind of link a piece of text was recognized as.
type Category int

const (
	Hashtag Category = iota
	Mention
	Phone
	Email
	URL
)

// Order is the fixed evaluation order used to resolve overlapping matches.
// Earlier categories win.
var Order = [...]Category{Hashtag, Mention, Phone, Email, URL}

// ErrDuplicateCategory is returned when a category is added to a set twice.
var ErrDuplicateCategory = errors.New("category already enabled")

var categoryInfo = [...]struct {
	name  string
	label string
}{
	Hashtag: {"hashtag", "Hashtag"},
	Mention: {"mention", "Mention"},
	Phone:   {"phone", "Phone"},
	Email:   {"email", "Email Address"},
	URL:     {"url", "Web URL"},
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c >= Hashtag && c <= URL
}

func (c Category) mustBeValid() {
	if !c.Valid() {
		panic(fmt.Sprintf("links: invalid category %d", int(c)))
	}
}

// Flag returns the power-of-two flag of the category (Hashtag=1 ... URL=16).
func (c Category) Flag() int {
	c.mustBeValid()
	return 1 << uint(c)
}

// Label returns the human readable label shown to users.
func (c Category) Label() string {
	c.mustBeValid()
	return categoryInfo[c].label
}

// Name returns the wire name of the category.
func (c Category) Name() string {
	c.mustBeValid()
	return categoryInfo[c].name
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryInfo[c].label
}

// MarshalText encodes the category by its wire name.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errors.Errorf("invalid category %d", int(c))
	}
	return []byte(categoryInfo[c].name), nil
}

// UnmarshalText decodes a wire name produced by MarshalText.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory resolves a wire name, case-insensitively.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range Order {
		if categoryInfo[c].name == name {
			return c, nil
		}
	}
	return 0, errors.Errorf("unknown link category %q", name)
}

// Set is a set of enabled categories. The zero value is the empty set.
type Set struct {
	bits int
}

// NewSet returns a set holding the given categories. Duplicates are ignored.
func NewSet(categories ...Category) Set {
	var s Set
	for _, c := range categories {
		s.bits |= c.Flag()
	}
	return s
}

// AllCategories returns the set with every category enabled.
func AllCategories() Set {
	return NewSet(Order[:]...)
}

// SetFromFlags decodes a bitmask of category flags. Unknown bits are ignored,
// so a negative "unset" value yields the empty set.
func SetFromFlags(flags int) Set {
	if flags < 0 {
		return Set{}
	}
	return Set{bits: flags & AllCategories().bits}
}

// Flags returns the bitmask representation of the set.
func (s Set) Flags() int {
	return s.bits
}

// Has reports whether c is enabled.
func (s Set) Has(c Category) bool {
	return c.Valid() && s.bits&c.Flag() != 0
}

// Empty reports whether no category is enabled.
func (s Set) Empty() bool {
	return s.bits == 0
}

// Add enables the given categories. Adding a category that is already
// enabled fails and leaves the set unchanged.
func (s *Set) Add(categories ...Category) error {
	bits := s.bits
	for _, c := range categories {
		if bits&c.Flag() != 0 {
			return errors.Wrapf(ErrDuplicateCategory, "%s", c.Label())
		}
		bits |= c.Flag()
	}
	s.bits = bits
	return nil
}

// Intersect returns the categories enabled in both s and other.
func (s Set) Intersect(other Set) Set {
	return Set{bits: s.bits & other.bits}
}

// Categories lists the enabled categories in evaluation order.
func (s Set) Categories() []Category {
	var out []Category
	for _, c := range Order {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

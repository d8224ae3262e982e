// Package span turns extracted link items into interactive spans that carry
// their draw state.
package span

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/fmartingr/mattermost-plugin-social-links/server/links"
)

// ColorResolver returns the normal draw color of a category.
type ColorResolver func(links.Category) color.RGBA

// Palette holds one color per category.
type Palette struct {
	Hashtag color.RGBA
	Mention color.RGBA
	Phone   color.RGBA
	Email   color.RGBA
	URL     color.RGBA
}

// Color resolves the color of c. It panics on an unknown category.
func (p Palette) Color(c links.Category) color.RGBA {
	switch c {
	case links.Hashtag:
		return p.Hashtag
	case links.Mention:
		return p.Mention
	case links.Phone:
		return p.Phone
	case links.Email:
		return p.Email
	case links.URL:
		return p.URL
	default:
		panic(fmt.Sprintf("span: invalid category %d", int(c)))
	}
}

// Span is an interactive region over a link item.
type Span struct {
	Category links.Category
	Start    int
	End      int
	Text     string

	NormalColor  color.RGBA
	PressedColor color.RGBA
	Underline    bool

	pressed bool
}

// Pressed reports whether the span is currently pressed.
func (s *Span) Pressed() bool {
	return s.pressed
}

// SetPressed changes the visual state of the span.
func (s *Span) SetPressed(pressed bool) {
	s.pressed = pressed
}

// DrawColor is the color the span should currently be painted with.
func (s *Span) DrawColor() color.RGBA {
	if s.pressed {
		return s.PressedColor
	}
	return s.NormalColor
}

// Contains reports whether offset falls in [Start, End).
func (s *Span) Contains(offset int) bool {
	return s.Start <= offset && offset < s.End
}

// Set is an ordered collection of non-overlapping spans.
type Set []*Span

// Build creates one span per item, keeping the item offsets.
func Build(items []links.Item, resolve ColorResolver, selected color.RGBA, underline bool) Set {
	set := make(Set, 0, len(items))
	for _, item := range items {
		set = append(set, &Span{
			Category:     item.Category,
			Start:        item.Start,
			End:          item.End,
			Text:         item.Text,
			NormalColor:  resolve(item.Category),
			PressedColor: selected,
			Underline:    underline,
		})
	}
	sort.Slice(set, func(a, b int) bool {
		return set[a].Start < set[b].Start
	})
	return set
}

// SpansAt returns the spans containing offset. Since spans never overlap
// there is at most one. A negative offset hits nothing.
func (s Set) SpansAt(offset int) []*Span {
	if offset < 0 {
		return nil
	}
	// first span ending after offset
	i := sort.Search(len(s), func(i int) bool {
		return s[i].End > offset
	})
	if i < len(s) && s[i].Contains(offset) {
		return []*Span{s[i]}
	}
	return nil
}

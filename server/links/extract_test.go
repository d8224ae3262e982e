package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		enabled  Set
		expected []Item
	}{
		{
			name:     "hashtag drops leading space",
			text:     "hello #tag",
			enabled:  NewSet(Hashtag),
			expected: []Item{{Category: Hashtag, Start: 6, End: 10, Text: "#tag"}},
		},
		{
			name:     "hashtag at start of text",
			text:     "#go rocks",
			enabled:  NewSet(Hashtag),
			expected: []Item{{Category: Hashtag, Start: 0, End: 3, Text: "#go"}},
		},
		{
			name:    "consecutive hashtags",
			text:    "#one #two",
			enabled: NewSet(Hashtag),
			expected: []Item{
				{Category: Hashtag, Start: 0, End: 4, Text: "#one"},
				{Category: Hashtag, Start: 5, End: 9, Text: "#two"},
			},
		},
		{
			name:     "hashtag after newline",
			text:     "line\n#tag",
			enabled:  NewSet(Hashtag),
			expected: []Item{{Category: Hashtag, Start: 5, End: 9, Text: "#tag"}},
		},
		{
			name:     "hashtag inside a word is ignored",
			text:     "issue#12",
			enabled:  NewSet(Hashtag),
			expected: nil,
		},
		{
			name:     "hashtag with unicode letters",
			text:     "voilà #café",
			enabled:  NewSet(Hashtag),
			expected: []Item{{Category: Hashtag, Start: 6, End: 11, Text: "#café"}},
		},
		{
			name:     "mention after a dot",
			text:     "a.@bob",
			enabled:  NewSet(Mention),
			expected: []Item{{Category: Mention, Start: 2, End: 6, Text: "@bob"}},
		},
		{
			name:     "mention after space",
			text:     "ping @alice_1 now",
			enabled:  NewSet(Mention),
			expected: []Item{{Category: Mention, Start: 5, End: 13, Text: "@alice_1"}},
		},
		{
			name:     "phone shorter than nine characters is dropped",
			text:     "call 12345678 now",
			enabled:  NewSet(Phone),
			expected: nil,
		},
		{
			name:     "phone of nine digits is kept",
			text:     "call 123456789 now",
			enabled:  NewSet(Phone),
			expected: []Item{{Category: Phone, Start: 5, End: 14, Text: "123456789"}},
		},
		{
			name:     "phone with country and area code",
			text:     "dial +1 (555) 123-4567",
			enabled:  NewSet(Phone),
			expected: []Item{{Category: Phone, Start: 5, End: 22, Text: "+1 (555) 123-4567"}},
		},
		{
			name:     "email",
			text:     "mail bob@example.com today",
			enabled:  NewSet(Email),
			expected: []Item{{Category: Email, Start: 5, End: 20, Text: "bob@example.com"}},
		},
		{
			name:     "email is not a mention",
			text:     "mail bob@example.com today",
			enabled:  NewSet(Mention, Email),
			expected: []Item{{Category: Email, Start: 5, End: 20, Text: "bob@example.com"}},
		},
		{
			name:     "url with scheme",
			text:     "see https://example.com/path ok",
			enabled:  NewSet(URL),
			expected: []Item{{Category: URL, Start: 4, End: 28, Text: "https://example.com/path"}},
		},
		{
			name:     "email wins over url",
			text:     "write bob@example.com",
			enabled:  NewSet(Email, URL),
			expected: []Item{{Category: Email, Start: 6, End: 21, Text: "bob@example.com"}},
		},
		{
			name:     "phone claims digits before url",
			text:     "http://example.com/555123456789",
			enabled:  NewSet(Phone, URL),
			expected: []Item{{Category: Phone, Start: 19, End: 31, Text: "555123456789"}},
		},
		{
			name:    "hashtag and phone",
			text:    "Contact #support at 555-123-4567",
			enabled: NewSet(Hashtag, Phone),
			expected: []Item{
				{Category: Hashtag, Start: 8, End: 16, Text: "#support"},
				{Category: Phone, Start: 20, End: 32, Text: "555-123-4567"},
			},
		},
		{
			name:     "disabled category",
			text:     "hello #tag",
			enabled:  NewSet(Mention),
			expected: nil,
		},
		{
			name:     "empty text",
			text:     "",
			enabled:  AllCategories(),
			expected: nil,
		},
		{
			name:     "no categories",
			text:     "hello #tag",
			enabled:  Set{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Extract(tt.text, tt.enabled))
		})
	}
}

func TestExtractUTF16Offsets(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start int
		end   int
	}{
		{name: "two byte rune", text: "é #tag", start: 2, end: 6},
		{name: "surrogate pair", text: "😀 #tag", start: 3, end: 7},
		{name: "ascii", text: "ab #tag", start: 3, end: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Extract(tt.text, NewSet(Hashtag))
			require.Len(t, items, 1)
			assert.Equal(t, tt.start, items[0].Start)
			assert.Equal(t, tt.end, items[0].End)
			assert.Equal(t, "#tag", items[0].Text)
		})
	}

	assert.Equal(t, 7, UTF16Len("😀 #tag"))
	assert.Equal(t, 0, UTF16Len(""))
}

func TestExtractInvariants(t *testing.T) {
	texts := []string{
		"",
		"plain text without links",
		"Contact #support at 555-123-4567",
		"#a #b @c .@d e@f.io https://x.io/#a 555 123 4567",
		"@@@ ### ... +1 (800) 555-0199 mail:me@example.org",
		"visit www.example.com or example.org/path?q=1 now #done",
		"😀 #emoji @ünïcödé 🚀 call +44 20 7946 0958",
		"12345678 123456789 1234567890",
	}

	for _, text := range texts {
		for flags := 0; flags < 32; flags++ {
			enabled := SetFromFlags(flags)
			items := Extract(text, enabled)
			length := UTF16Len(text)

			for i, item := range items {
				assert.True(t, enabled.Has(item.Category), "text %q flags %d: unexpected category %v", text, flags, item.Category)
				assert.True(t, 0 <= item.Start && item.Start < item.End && item.End <= length,
					"text %q flags %d: bad bounds %+v", text, flags, item)
				if item.Category == Phone {
					assert.Greater(t, item.Len(), 8)
				}
				if i > 0 {
					assert.LessOrEqual(t, items[i-1].End, item.Start,
						"text %q flags %d: %+v overlaps %+v", text, flags, items[i-1], item)
				}
			}

			assert.Equal(t, items, Extract(text, enabled), "extraction must be idempotent")
		}
	}
}

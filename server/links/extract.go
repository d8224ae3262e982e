package links

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Item is a single recognized link. Start and End are UTF-16 code unit
// offsets into the scanned text, End exclusive, which is how the webapp
// indexes strings.
type Item struct {
	Category Category `json:"category"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Text     string   `json:"text"`
}

// Len returns the length of the item in UTF-16 code units.
func (i Item) Len() int {
	return i.End - i.Start
}

// Overlaps reports whether the two items share at least one offset.
func (i Item) Overlaps(o Item) bool {
	return i.Start < o.End && o.Start < i.End
}

// Extract finds every link of the enabled categories in text.
//
// Categories are scanned in Order. A match that overlaps a range already
// claimed, by an earlier category or an earlier match, is dropped, so the
// result never contains overlapping items. Items are sorted by Start.
func Extract(text string, enabled Set) []Item {
	if text == "" || enabled.Empty() {
		return nil
	}

	offsets := newOffsetIndex(text)

	var items []Item
	for _, c := range Order {
		if !enabled.Has(c) {
			continue
		}
		pattern := PatternFor(c)
		group := pattern.Regexp.SubexpIndex(linkGroup)

		for _, loc := range pattern.Regexp.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[0], loc[1]
			if group > 0 && loc[2*group] >= 0 {
				start, end = loc[2*group], loc[2*group+1]
			}
			if start >= end {
				continue
			}

			item := Item{
				Category: c,
				Start:    offsets.utf16(start),
				End:      offsets.utf16(end),
				Text:     text[start:end],
			}
			if pattern.MinLengthFilter && item.Len() < minPhoneLength {
				continue
			}
			if overlapsAny(item, items) {
				continue
			}
			items = append(items, item)
		}
	}

	sort.Slice(items, func(a, b int) bool {
		return items[a].Start < items[b].Start
	})
	return items
}

func overlapsAny(item Item, claimed []Item) bool {
	for _, other := range claimed {
		if item.Overlaps(other) {
			return true
		}
	}
	return false
}

// offsetIndex converts byte offsets of a string into UTF-16 offsets.
type offsetIndex struct {
	// units[i] is the UTF-16 offset of byte i. Continuation bytes share
	// the offset of the rune they belong to.
	units []int
}

func newOffsetIndex(text string) offsetIndex {
	units := make([]int, len(text)+1)
	n := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		for j := 0; j < size; j++ {
			units[i+j] = n
		}
		// invalid UTF-8 decodes to RuneError, which is one unit wide
		n += utf16.RuneLen(r)
		i += size
	}
	units[len(text)] = n
	return offsetIndex{units: units}
}

func (o offsetIndex) utf16(byteOffset int) int {
	return o.units[byteOffset]
}

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	return newOffsetIndex(s).utf16(len(s))
}

package gesture

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmartingr/mattermost-plugin-social-links/server/links"
	"github.com/fmartingr/mattermost-plugin-social-links/server/span"
)

type click struct {
	category links.Category
	text     string
}

type recorder struct {
	clicks []click
}

func (r *recorder) onClick(category links.Category, text string) {
	r.clicks = append(r.clicks, click{category: category, text: text})
}

var line = Rect{Left: 0, Top: 0, Right: 200, Bottom: 20}

func testSpans(t *testing.T) span.Set {
	items := links.Extract("Contact #support at 555-123-4567", links.NewSet(links.Hashtag, links.Phone))
	require.Len(t, items, 2)
	resolve := func(links.Category) color.RGBA { return color.RGBA{R: 0xff, A: 0xff} }
	return span.Build(items, resolve, color.RGBA{A: 0xff}, false)
}

func at(phase Phase, offset int) Event {
	return Event{Phase: phase, X: 10, Y: 10, Line: line, Offset: offset}
}

func TestPressThenMoveOffCancels(t *testing.T) {
	spans := testSpans(t)
	rec := &recorder{}
	e := NewEngine(spans, rec.onClick)
	hashtag := spans[0]

	assert.True(t, e.Handle(at(Begin, 10)))
	assert.True(t, hashtag.Pressed())
	assert.Same(t, hashtag, e.Pressed())
	start, end, ok := e.Selection()
	assert.True(t, ok)
	assert.Equal(t, 8, start)
	assert.Equal(t, 16, end)

	// still over the same span
	assert.True(t, e.Handle(at(Move, 12)))
	assert.True(t, hashtag.Pressed())

	// moved onto plain text
	assert.True(t, e.Handle(at(Move, 18)))
	assert.False(t, hashtag.Pressed())
	assert.Nil(t, e.Pressed())
	_, _, ok = e.Selection()
	assert.False(t, ok)

	assert.True(t, e.Handle(at(End, 18)))
	assert.Empty(t, rec.clicks)
}

func TestPressReleaseClicksOnce(t *testing.T) {
	spans := testSpans(t)
	rec := &recorder{}
	e := NewEngine(spans, rec.onClick)

	e.Handle(at(Begin, 9))
	e.Handle(at(End, 15))

	require.Len(t, rec.clicks, 1)
	assert.Equal(t, click{category: links.Hashtag, text: "#support"}, rec.clicks[0])
	assert.False(t, spans[0].Pressed())
	assert.Nil(t, e.Pressed())
	_, _, ok := e.Selection()
	assert.False(t, ok)

	// a stray release afterwards does nothing
	e.Handle(at(End, 15))
	assert.Len(t, rec.clicks, 1)
}

func TestCancelNeverClicks(t *testing.T) {
	spans := testSpans(t)
	rec := &recorder{}
	e := NewEngine(spans, rec.onClick)

	e.Handle(at(Begin, 10))
	require.True(t, spans[0].Pressed())

	assert.True(t, e.Handle(at(Cancel, 10)))
	assert.False(t, spans[0].Pressed())
	assert.Empty(t, rec.clicks)
}

func TestUnknownPhaseIsCancel(t *testing.T) {
	spans := testSpans(t)
	rec := &recorder{}
	e := NewEngine(spans, rec.onClick)

	e.Handle(at(Begin, 10))
	assert.True(t, e.Handle(at(Phase(42), 10)))
	assert.False(t, spans[0].Pressed())
	assert.Empty(t, rec.clicks)
}

func TestNoRepressOnAnotherSpan(t *testing.T) {
	spans := testSpans(t)
	rec := &recorder{}
	e := NewEngine(spans, rec.onClick)

	e.Handle(at(Begin, 10))
	e.Handle(at(Move, 25))
	assert.False(t, spans[0].Pressed())
	assert.False(t, spans[1].Pressed(), "sliding onto another link does not press it")

	e.Handle(at(End, 25))
	assert.Empty(t, rec.clicks)
}

func TestReleaseOverAnotherSpanDoesNotClick(t *testing.T) {
	spans := testSpans(t)
	rec := &recorder{}
	e := NewEngine(spans, rec.onClick)

	e.Handle(at(Begin, 10))
	e.Handle(at(End, 25))
	assert.Empty(t, rec.clicks)
	assert.False(t, spans[0].Pressed())
}

func TestPointerOutsideLineMisses(t *testing.T) {
	spans := testSpans(t)
	rec := &recorder{}
	e := NewEngine(spans, rec.onClick)

	// the offset resolves to the hashtag but the pointer is past the line end
	e.Handle(Event{Phase: Begin, X: 250, Y: 10, Line: line, Offset: 10})
	assert.Nil(t, e.Pressed())
	assert.False(t, spans[0].Pressed())

	// no usable offset
	e.Handle(Event{Phase: Begin, X: 10, Y: 10, Line: line, Offset: -1})
	assert.Nil(t, e.Pressed())

	// release outside the line after a valid press
	e.Handle(at(Begin, 10))
	e.Handle(Event{Phase: End, X: 10, Y: 30, Line: line, Offset: 10})
	assert.Empty(t, rec.clicks)
	assert.False(t, spans[0].Pressed())
}

func TestBeginWhilePressedReleasesPrevious(t *testing.T) {
	spans := testSpans(t)
	e := NewEngine(spans, nil)

	e.Handle(at(Begin, 10))
	e.Handle(at(Begin, 22))
	assert.False(t, spans[0].Pressed())
	assert.True(t, spans[1].Pressed())
	assert.Same(t, spans[1], e.Pressed())

	// nil click func is allowed
	assert.NotPanics(t, func() { e.Handle(at(End, 22)) })
	assert.False(t, spans[1].Pressed())
}

func TestResetCancelsPress(t *testing.T) {
	spans := testSpans(t)
	rec := &recorder{}
	e := NewEngine(spans, rec.onClick)

	e.Handle(at(Begin, 10))
	require.True(t, spans[0].Pressed())

	replacement := testSpans(t)
	e.Reset(replacement)
	assert.False(t, spans[0].Pressed())
	assert.Nil(t, e.Pressed())

	// the release belongs to the cancelled gesture
	e.Handle(at(End, 10))
	assert.Empty(t, rec.clicks)

	e.Handle(at(Begin, 10))
	assert.Same(t, replacement[0], e.Pressed())
}

func TestRectContains(t *testing.T) {
	tests := []struct {
		name     string
		rect     Rect
		x, y     float32
		expected bool
	}{
		{name: "inside", rect: line, x: 5, y: 5, expected: true},
		{name: "top left corner", rect: line, x: 0, y: 0, expected: true},
		{name: "right edge", rect: line, x: 200, y: 5, expected: false},
		{name: "bottom edge", rect: line, x: 5, y: 20, expected: false},
		{name: "left of line", rect: line, x: -1, y: 5, expected: false},
		{name: "empty rect", rect: Rect{Left: 5, Right: 5, Top: 0, Bottom: 10}, x: 5, y: 5, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.rect.Contains(tt.x, tt.y))
		})
	}
}

func TestParsePhase(t *testing.T) {
	assert.Equal(t, Begin, ParsePhase("begin"))
	assert.Equal(t, Begin, ParsePhase("DOWN"))
	assert.Equal(t, Move, ParsePhase("move"))
	assert.Equal(t, End, ParsePhase("up"))
	assert.Equal(t, Cancel, ParsePhase("cancel"))
	assert.Equal(t, Cancel, ParsePhase("pointerdown2"))
	assert.Equal(t, "end", End.String())
}

// Package gesture resolves pointer gestures against interactive link spans.
//
// Hits are resolved with line geometry instead of glyph boxes: for every
// event the host reports the bounds of the text line under the pointer and
// the character offset nearest to the pointer on that line. A span is hit
// when the pointer lies inside the line bounds and the offset falls inside
// the span.
package gesture

import (
	"strings"

	"github.com/fmartingr/mattermost-plugin-social-links/server/links"
	"github.com/fmartingr/mattermost-plugin-social-links/server/span"
)

// Phase is the stage of a pointer gesture an event belongs to.
type Phase int

const (
	Begin Phase = iota
	Move
	End
	Cancel
)

func (p Phase) String() string {
	switch p {
	case Begin:
		return "begin"
	case Move:
		return "move"
	case End:
		return "end"
	default:
		return "cancel"
	}
}

// ParsePhase decodes a phase name. Anything unrecognized is a Cancel, so a
// gesture interrupted by the host never leaves a span pressed.
func ParsePhase(name string) Phase {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "begin", "down", "start":
		return Begin
	case "move":
		return Move
	case "end", "up":
		return End
	default:
		return Cancel
	}
}

// Rect is the bounding box of a laid out text line.
type Rect struct {
	Left   float32 `json:"left"`
	Top    float32 `json:"top"`
	Right  float32 `json:"right"`
	Bottom float32 `json:"bottom"`
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Contains reports whether (x, y) is inside the rectangle. The left and top
// edges are inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(x, y float32) bool {
	return !r.Empty() && x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Event is one pointer event together with the layout of the line under it.
type Event struct {
	Phase Phase
	X, Y  float32

	// Line is the bounds of the line under the pointer.
	Line Rect
	// Offset is the character offset closest to X on that line, or a
	// negative value when the layout could not resolve one.
	Offset int
}

// SpanSource answers which spans contain a character offset.
type SpanSource interface {
	SpansAt(offset int) []*span.Span
}

// ClickFunc is notified when a press is released over the span it started on.
type ClickFunc func(category links.Category, text string)

// Engine tracks the pressed span of one widget across gestures.
// It is not safe for concurrent use.
type Engine struct {
	source  SpanSource
	onClick ClickFunc

	pressed   *span.Span
	selection *selection
}

type selection struct {
	start, end int
}

// NewEngine creates an engine resolving hits against source. onClick may be nil.
func NewEngine(source SpanSource, onClick ClickFunc) *Engine {
	return &Engine{
		source:  source,
		onClick: onClick,
	}
}

// Handle advances the gesture with ev. It always reports the event as
// consumed: the engine owns pointer handling for the widget.
func (e *Engine) Handle(ev Event) bool {
	switch ev.Phase {
	case Begin:
		e.release()
		if hit := e.touched(ev); hit != nil {
			hit.SetPressed(true)
			e.pressed = hit
			e.selection = &selection{start: hit.Start, end: hit.End}
		}

	case Move:
		if e.pressed != nil && e.touched(ev) != e.pressed {
			e.release()
		}

	case End:
		pressed := e.pressed
		e.release()
		if pressed != nil && e.touched(ev) == pressed && e.onClick != nil {
			e.onClick(pressed.Category, pressed.Text)
		}

	default:
		e.release()
	}
	return true
}

// Reset swaps the span source, for instance after the text was extracted
// again, and cancels any press in flight.
func (e *Engine) Reset(source SpanSource) {
	e.release()
	e.source = source
}

// Pressed returns the span currently pressed, or nil.
func (e *Engine) Pressed() *span.Span {
	return e.pressed
}

// Selection returns the range highlighted while a span is pressed.
func (e *Engine) Selection() (start, end int, ok bool) {
	if e.selection == nil {
		return 0, 0, false
	}
	return e.selection.start, e.selection.end, true
}

func (e *Engine) release() {
	if e.pressed != nil {
		e.pressed.SetPressed(false)
		e.pressed = nil
	}
	e.selection = nil
}

// touched returns the span under the pointer, if any.
func (e *Engine) touched(ev Event) *span.Span {
	if e.source == nil || ev.Offset < 0 || !ev.Line.Contains(ev.X, ev.Y) {
		return nil
	}
	spans := e.source.SpansAt(ev.Offset)
	if len(spans) == 0 {
		return nil
	}
	return spans[0]
}

package main

import (
	"sync"
	"time"

	"github.com/fmartingr/mattermost-plugin-social-links/server/gesture"
	"github.com/fmartingr/mattermost-plugin-social-links/server/links"
	"github.com/fmartingr/mattermost-plugin-social-links/server/span"
)

// defaultSessionIdleTimeout is how long a gesture session may stay silent before the sweep drops it
const defaultSessionIdleTimeout = 10 * time.Minute

// SessionKey identifies one rendered post in one webapp widget
type SessionKey struct {
	UserID    string
	PostID    string
	SessionID string
}

// Selection is the text range highlighted while a link is pressed
type Selection struct {
	Start int
	End   int
}

// GestureResult is the state of a session after handling one event
type GestureResult struct {
	Consumed  bool
	Pressed   *span.Span
	Selection *Selection
	Click     *Click
}

// SpanLoader builds a fresh span set for a post
type SpanLoader func() (span.Set, error)

type gestureSession struct {
	mu       sync.Mutex
	engine   *gesture.Engine
	lastSeen time.Time
	clicked  *Click
}

// GestureSessions owns one gesture engine per session. Each session has its
// own spans, so pressing a link in one widget never shows in another.
type GestureSessions struct {
	mu          sync.Mutex
	sessions    map[SessionKey]*gestureSession
	idleTimeout time.Duration
	now         func() time.Time

	// resets counts ResetPost and drop calls
	resets uint64
}

// NewGestureSessions creates an empty session registry
func NewGestureSessions(idleTimeout time.Duration) *GestureSessions {
	if idleTimeout <= 0 {
		idleTimeout = defaultSessionIdleTimeout
	}
	return &GestureSessions{
		sessions:    make(map[SessionKey]*gestureSession),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Handle feeds one pointer event to the session identified by key, creating
// the session with spans from load if it does not exist yet
func (s *GestureSessions) Handle(key SessionKey, ev gesture.Event, load SpanLoader) (GestureResult, error) {
	session, err := s.session(key, load)
	if err != nil {
		return GestureResult{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	session.lastSeen = s.now()
	session.clicked = nil

	result := GestureResult{
		Consumed: session.engine.Handle(ev),
		Click:    session.clicked,
	}
	if pressed := session.engine.Pressed(); pressed != nil {
		snapshot := *pressed
		result.Pressed = &snapshot
	}
	if start, end, ok := session.engine.Selection(); ok {
		result.Selection = &Selection{Start: start, End: end}
	}

	return result, nil
}

func (s *GestureSessions) session(key SessionKey, load SpanLoader) (*gestureSession, error) {
	for {
		s.mu.Lock()
		session, ok := s.sessions[key]
		resets := s.resets
		s.mu.Unlock()
		if ok {
			return session, nil
		}

		spans, err := load()
		if err != nil {
			return nil, err
		}

		session = &gestureSession{lastSeen: s.now()}
		session.engine = gesture.NewEngine(spans, func(category links.Category, text string) {
			session.clicked = &Click{
				UserID:   key.UserID,
				PostID:   key.PostID,
				Category: category,
				Text:     text,
			}
		})

		s.mu.Lock()
		// another request may have created it meanwhile
		if existing, ok := s.sessions[key]; ok {
			s.mu.Unlock()
			return existing, nil
		}
		// spans loaded before a reset may be stale, load them again
		if s.resets != resets {
			s.mu.Unlock()
			continue
		}
		s.sessions[key] = session
		s.mu.Unlock()
		return session, nil
	}
}

// ResetPost gives every open session of a post fresh spans, cancelling presses in flight
func (s *GestureSessions) ResetPost(postID string, build func() span.Set) int {
	s.mu.Lock()
	s.resets++
	s.mu.Unlock()

	reset := 0
	for _, session := range s.sessionsOf(postID) {
		session.mu.Lock()
		session.engine.Reset(build())
		session.mu.Unlock()
		reset++
	}
	return reset
}

// DropPost cancels and removes every session of a post
func (s *GestureSessions) DropPost(postID string) int {
	return s.drop(func(key SessionKey) bool {
		return key.PostID == postID
	})
}

// DropAll cancels and removes every session, for instance when the link
// settings changed and every span set is stale
func (s *GestureSessions) DropAll() int {
	return s.drop(func(SessionKey) bool {
		return true
	})
}

func (s *GestureSessions) drop(match func(SessionKey) bool) int {
	s.mu.Lock()
	s.resets++
	var dropped []*gestureSession
	for key, session := range s.sessions {
		if match(key) {
			dropped = append(dropped, session)
			delete(s.sessions, key)
		}
	}
	s.mu.Unlock()

	for _, session := range dropped {
		session.cancel()
	}
	return len(dropped)
}

// Sweep cancels and removes sessions idle for longer than the idle timeout
func (s *GestureSessions) Sweep() int {
	cutoff := s.now().Add(-s.idleTimeout)

	s.mu.Lock()
	var dropped []*gestureSession
	for key, session := range s.sessions {
		session.mu.Lock()
		idle := session.lastSeen.Before(cutoff)
		session.mu.Unlock()
		if idle {
			dropped = append(dropped, session)
			delete(s.sessions, key)
		}
	}
	s.mu.Unlock()

	for _, session := range dropped {
		session.cancel()
	}
	return len(dropped)
}

// Len returns the number of open sessions
func (s *GestureSessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *GestureSessions) sessionsOf(postID string) []*gestureSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*gestureSession
	for key, session := range s.sessions {
		if key.PostID == postID {
			matched = append(matched, session)
		}
	}
	return matched
}

func (g *gestureSession) cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.engine.Handle(gesture.Event{Phase: gesture.Cancel, Offset: -1})
}

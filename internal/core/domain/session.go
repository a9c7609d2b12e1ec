package domain

import "time"

// ChatTurn is a single question/answer exchange. Immutable once
// appended to a session.
type ChatTurn struct {
	// Question is the user's question verbatim.
	Question string `json:"question"`

	// Answer is the generated answer text.
	Answer string `json:"answer"`

	// Sources are the distinct document identifiers the answer was
	// grounded on at answer time. A later-deleted index does not
	// retroactively invalidate the turn.
	Sources []string `json:"sources"`
}

// Session is a named chat log. Turns are ordered newest-first.
type Session struct {
	// ID identifies the session. Derived from the creation timestamp
	// unless the session has been renamed.
	ID string

	// Turns is the chat log, newest-first.
	Turns []ChatTurn
}

// Prepend inserts a turn at the front of the log, keeping the
// newest-first ordering.
func (s *Session) Prepend(turn ChatTurn) {
	s.Turns = append([]ChatTurn{turn}, s.Turns...)
}

// NewSessionID derives a fresh session identifier from the given
// creation time.
func NewSessionID(now time.Time) string {
	return now.Format("20060102150405")
}

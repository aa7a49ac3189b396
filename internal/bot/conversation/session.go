// Package conversation tracks per-user intake wizard sessions. A session
// collects the article title, deadline, and author across consecutive
// messages and is cleaned up on both commit and cancel.
package conversation

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// State identifies the wizard step awaiting input.
type State int

const (
	// StateTitle waits for the article title.
	StateTitle State = iota
	// StateDeadline waits for the deadline in YYYY-MM-DD form.
	StateDeadline
	// StateAuthor waits for the author username.
	StateAuthor
	// StateDone means all fields are collected and the task is ready to commit.
	StateDone
)

// ErrInvalidDeadline is returned when deadline input does not match
// YYYY-MM-DD. The session stays in StateDeadline and keeps prior input.
var ErrInvalidDeadline = errors.New("invalid deadline format")

// ErrEmptyInput is returned when a step receives empty text, e.g. the text of
// a sticker or photo update. The session stays in place for re-entry.
var ErrEmptyInput = errors.New("empty input")

// ErrNoSession is returned when input arrives for a user without an active
// wizard session.
var ErrNoSession = errors.New("no active session")

// Session holds the fields collected so far for one user's intake.
type Session struct {
	State    State
	Title    string
	Deadline string
	Author   string
}

// Manager owns all active sessions, keyed by Telegram user id.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	validate *validator.Validate
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		validate: validator.New(),
	}
}

// Begin starts a fresh session for the user, replacing any existing one.
func (m *Manager) Begin(userID int64) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{State: StateTitle}
	m.sessions[userID] = s
	return *s
}

// Get returns a snapshot of the user's session, if any.
func (m *Manager) Get(userID int64) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// End removes the user's session. Safe to call when none exists.
func (m *Manager) End(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
}

// Advance feeds one text input into the user's session and returns the
// session after the transition. Empty input and a failed deadline validation
// return ErrEmptyInput and ErrInvalidDeadline respectively, leaving the
// session in place for re-entry.
func (m *Manager) Advance(userID int64, input string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return Session{}, ErrNoSession
	}

	input = strings.TrimSpace(input)

	switch s.State {
	case StateTitle:
		if input == "" {
			return *s, ErrEmptyInput
		}
		s.Title = input
		s.State = StateDeadline
	case StateDeadline:
		if err := m.validate.Var(input, "datetime=2006-01-02"); err != nil {
			return *s, ErrInvalidDeadline
		}
		s.Deadline = input
		s.State = StateAuthor
	case StateAuthor:
		if input == "" {
			return *s, ErrEmptyInput
		}
		s.Author = NormalizeAuthor(input)
		s.State = StateDone
	}

	return *s, nil
}

// NormalizeAuthor ensures the author handle starts with @.
func NormalizeAuthor(author string) string {
	author = strings.TrimSpace(author)
	if author == "" || strings.HasPrefix(author, "@") {
		return author
	}
	return "@" + author
}

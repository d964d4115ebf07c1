// Package session keeps the terminal sessions of hosts that are not
// connection-bound, such as the HTTP API, where a client addresses its
// session by id between requests.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/fakeyudi/termfolio/internal/opener"
	"github.com/fakeyudi/termfolio/internal/shell"
	"github.com/fakeyudi/termfolio/internal/terminal"
	"github.com/fakeyudi/termfolio/internal/transcript"
)

// Session is one remote terminal. Its methods are safe for concurrent use;
// commands run one at a time.
type Session struct {
	ID      string
	Created time.Time

	mu       sync.Mutex
	lastSeen time.Time
	closed   bool
	term     *terminal.State
	exec     *shell.Executor
	opened   *opener.Recorder
}

// Run executes one submitted line and returns the session transcript after
// it, including any URLs the command asked to open. Non-blank lines are
// added to the history like in the interactive terminal.
func (s *Session) Run(line string, now time.Time) *transcript.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	if strings.TrimSpace(line) != "" {
		s.term.RecordSubmittedCommand(line)
	}
	s.exec.Execute(line)
	return transcript.FromState(s.term, s.opened.Drain())
}

// Snapshot returns the current transcript without running anything.
func (s *Session) Snapshot() *transcript.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return transcript.FromState(s.term, nil)
}

// History returns the submitted lines, oldest first.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term.History()
}

// Closed reports whether the session ran `exit`.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

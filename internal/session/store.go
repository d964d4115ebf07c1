package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fakeyudi/termfolio/internal/opener"
	"github.com/fakeyudi/termfolio/internal/shell"
	"github.com/fakeyudi/termfolio/internal/terminal"
)

// ErrNoSession is returned for unknown or expired session ids.
var ErrNoSession = errors.New("no such session")

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// Template holds what every new session's executor is built from.
type Template struct {
	Profile   shell.ProfileSource
	Projects  shell.ProjectSource
	BrowseURL string
	Log       *logrus.Entry
}

// Store is an in-memory registry of sessions keyed by id.
type Store struct {
	tpl Template
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore returns an empty store; ttl <= 0 selects DefaultTTL.
func NewStore(tpl Template, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		tpl:      tpl,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session with the welcome banner already in its transcript.
func (st *Store) Create() *Session {
	now := st.now()
	s := &Session{
		ID:       uuid.NewString(),
		Created:  now,
		lastSeen: now,
		term:     terminal.New(),
		opened:   &opener.Recorder{},
	}
	log := st.tpl.Log
	if log != nil {
		log = log.WithField("session", s.ID)
	}
	s.exec = &shell.Executor{
		Term:      s.term,
		Profile:   st.tpl.Profile,
		Projects:  st.tpl.Projects,
		Opener:    s.opened,
		BrowseURL: st.tpl.BrowseURL,
		// Called with s.mu held by Run.
		OnExit: func() { s.closed = true },
		Log:    log,
	}
	s.exec.Welcome()

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the live session with id. Expired sessions are removed and
// reported as ErrNoSession.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	if st.expired(s) {
		delete(st.sessions, id)
		return nil, ErrNoSession
	}
	return s, nil
}

// Delete removes the session with id.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrNoSession
	}
	delete(st.sessions, id)
	return nil
}

// Len returns the number of sessions held, expired ones included until swept.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if st.expired(s) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := st.Sweep(); n > 0 && st.tpl.Log != nil {
				st.tpl.Log.WithField("expired", n).Debug("swept idle sessions")
			}
		}
	}
}

// Now is the store's clock; Session.Run callers stamp activity with it.
func (st *Store) Now() time.Time {
	return st.now()
}

func (st *Store) expired(s *Session) bool {
	return st.now().Sub(s.idleSince()) > st.ttl
}

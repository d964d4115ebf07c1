package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fakeyudi/termfolio/internal/profile"
	"github.com/fakeyudi/termfolio/internal/projects"
)

// fakeClock is a settable clock for expiry tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newStore(ttl time.Duration) (*Store, *fakeClock, *projects.Catalog) {
	cat := projects.NewCatalog()
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	st := NewStore(Template{Profile: profile.Default(), Projects: cat}, ttl)
	st.now = clock.Now
	return st, clock, cat
}

func TestCreateShowsWelcome(t *testing.T) {
	st, _, _ := newStore(time.Minute)
	s := st.Create()

	if s.ID == "" {
		t.Fatal("empty session id")
	}
	tr := s.Snapshot()
	if tr.Path != "~" || len(tr.Lines) == 0 {
		t.Errorf("snapshot = %+v", tr)
	}
	got, err := st.Get(s.ID)
	if err != nil || got != s {
		t.Errorf("Get(%s) = %v, %v", s.ID, got, err)
	}
}

func TestRunReturnsTranscriptAndOpenedURLs(t *testing.T) {
	st, _, cat := newStore(time.Minute)
	cat.Resolve([]projects.Project{{Name: "demo", Repo: "u/demo"}})
	s := st.Create()

	s.Run("cd projects", st.Now())
	s.Run("cd demo", st.Now())
	tr := s.Run("open go.mod", st.Now())

	if tr.Path != "~/projects/demo" || tr.Repo != "u/demo" {
		t.Errorf("location = %s (%s)", tr.Path, tr.Repo)
	}
	if len(tr.Opened) != 1 || tr.Opened[0] != "https://github.com/u/demo/blob/main/go.mod" {
		t.Errorf("opened = %v", tr.Opened)
	}
	// URLs are reported once.
	if tr := s.Run("pwd", st.Now()); len(tr.Opened) != 0 {
		t.Errorf("opened again: %v", tr.Opened)
	}
	if h := s.History(); len(h) != 4 {
		t.Errorf("history = %v", h)
	}
}

func TestBlankLineNotRecorded(t *testing.T) {
	st, _, _ := newStore(time.Minute)
	s := st.Create()
	s.Run("  ", st.Now())
	if h := s.History(); len(h) != 0 {
		t.Errorf("history = %v", h)
	}
}

func TestExitClosesSession(t *testing.T) {
	st, _, _ := newStore(time.Minute)
	s := st.Create()
	s.Run("exit", st.Now())
	if !s.Closed() {
		t.Error("session not closed after exit")
	}
}

func TestExpiry(t *testing.T) {
	st, clock, _ := newStore(time.Minute)
	idle := st.Create()
	busy := st.Create()

	clock.Advance(40 * time.Second)
	busy.Run("pwd", st.Now())
	clock.Advance(40 * time.Second)

	if _, err := st.Get(idle.ID); !errors.Is(err, ErrNoSession) {
		t.Errorf("idle session: err = %v, want ErrNoSession", err)
	}
	if _, err := st.Get(busy.ID); err != nil {
		t.Errorf("busy session: %v", err)
	}

	clock.Advance(2 * time.Minute)
	if n := st.Sweep(); n != 1 {
		t.Errorf("Sweep() = %d, want 1", n)
	}
	if st.Len() != 0 {
		t.Errorf("Len() = %d after sweep", st.Len())
	}
}

func TestDelete(t *testing.T) {
	st, _, _ := newStore(time.Minute)
	s := st.Create()
	if err := st.Delete(s.ID); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(s.ID); !errors.Is(err, ErrNoSession) {
		t.Errorf("second delete: %v", err)
	}
}

func TestConcurrentSessions(t *testing.T) {
	st, _, cat := newStore(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := st.Create()
			for j := 0; j < 20; j++ {
				s.Run("cd projects", st.Now())
				s.Run("ls", st.Now())
				s.Run("cd ~", st.Now())
			}
		}()
	}
	cat.Resolve([]projects.Project{{Name: "demo", Repo: "u/demo"}})
	wg.Wait()
	if st.Len() != 8 {
		t.Errorf("Len() = %d, want 8", st.Len())
	}
}

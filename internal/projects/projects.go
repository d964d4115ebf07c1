// Package projects supplies the repository listing shown under ~/projects.
// The list is fetched once in the background and published through a
// Catalog that any number of sessions can read.
package projects

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Project is one repository summary.
type Project struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Repo        string    `json:"repo"` // source identifier, e.g. "user/name"
	Stars       int       `json:"stars,omitempty"`
	Language    string    `json:"language,omitempty"`
	Updated     time.Time `json:"updated,omitzero"`
}

// Lister fetches the repositories of a user, most recently updated first.
type Lister interface {
	List(ctx context.Context, user string) ([]Project, error)
}

// Fallback returns the single record used when the listing cannot be fetched:
// the portfolio's own source repository.
func Fallback(repo string) []Project {
	return []Project{{
		Name:        repoName(repo),
		Description: "Terminal Portfolio Website",
		URL:         "https://github.com/" + repo,
		Repo:        repo,
	}}
}

func repoName(repo string) string {
	for i := len(repo) - 1; i >= 0; i-- {
		if repo[i] == '/' {
			return repo[i+1:]
		}
	}
	return repo
}

// Catalog is a single-slot cell holding the project list. It starts unloaded
// and is resolved exactly once; later Resolve calls replace the list but the
// Ready channel is only closed the first time.
type Catalog struct {
	mu       sync.RWMutex
	loaded   bool
	projects []Project
	ready    chan struct{}
	once     sync.Once
}

// NewCatalog returns an unloaded catalog.
func NewCatalog() *Catalog {
	return &Catalog{ready: make(chan struct{})}
}

// Loaded reports whether the list has been resolved.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Projects returns a copy of the current list.
func (c *Catalog) Projects() []Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Project, len(c.projects))
	copy(out, c.projects)
	return out
}

// Resolve publishes list and marks the catalog loaded.
func (c *Catalog) Resolve(list []Project) {
	c.mu.Lock()
	c.projects = append([]Project(nil), list...)
	c.loaded = true
	c.mu.Unlock()
	c.once.Do(func() { close(c.ready) })
}

// Ready is closed once the catalog has been resolved.
func (c *Catalog) Ready() <-chan struct{} {
	return c.ready
}

// Wait blocks until the catalog is resolved or ctx is done.
func (c *Catalog) Wait(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Populate fetches the listing for user and resolves the catalog. Any failure
// is absorbed: the catalog is resolved with Fallback(fallbackRepo) instead, so
// readers only ever see "not loaded yet" or a usable list.
func Populate(ctx context.Context, l Lister, user, fallbackRepo string, c *Catalog, log *logrus.Entry) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	list, err := l.List(ctx, user)
	if err != nil {
		log.WithError(err).WithField("user", user).Warn("repository listing failed, using fallback")
		c.Resolve(Fallback(fallbackRepo))
		return
	}
	log.WithField("count", len(list)).Info("repositories loaded")
	c.Resolve(list)
}

// StatusError is returned when the listing endpoint answers with a non-2xx status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

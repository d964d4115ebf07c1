package projects

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const reposJSON = `[
  {"name":"gpu-raytracer","description":"CUDA path tracer","html_url":"https://github.com/jdoe/gpu-raytracer",
   "full_name":"jdoe/gpu-raytracer","stargazers_count":12,"language":"C++","updated_at":"2025-03-01T10:00:00Z"},
  {"name":"dotfiles","description":null,"html_url":"https://github.com/jdoe/dotfiles",
   "full_name":"jdoe/dotfiles","stargazers_count":0,"language":null,"updated_at":"2024-12-24T08:30:00Z"}
]`

func newRepoServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/jdoe/repos" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("sort"); got != "updated" {
			t.Errorf("sort = %q, want updated", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("per_page = %q, want 100", got)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGitHubListerParsesRepositories(t *testing.T) {
	srv := newRepoServer(t, http.StatusOK, reposJSON)
	l := &GitHubLister{BaseURL: srv.URL, Client: srv.Client()}

	list, err := l.List(context.Background(), "jdoe")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d projects, want 2", len(list))
	}

	first := list[0]
	if first.Name != "gpu-raytracer" || first.Repo != "jdoe/gpu-raytracer" {
		t.Errorf("first = %+v", first)
	}
	if first.Stars != 12 || first.Language != "C++" {
		t.Errorf("badges: stars=%d language=%q", first.Stars, first.Language)
	}
	if !first.Updated.Equal(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Updated = %v", first.Updated)
	}

	second := list[1]
	if second.Description != "No description available" {
		t.Errorf("null description should be replaced, got %q", second.Description)
	}
	if second.Language != "" {
		t.Errorf("null language should be empty, got %q", second.Language)
	}
}

func TestGitHubListerStatusError(t *testing.T) {
	srv := newRepoServer(t, http.StatusForbidden, `{"message":"rate limited"}`)
	l := &GitHubLister{BaseURL: srv.URL, Client: srv.Client()}

	_, err := l.List(context.Background(), "jdoe")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.Code != http.StatusForbidden {
		t.Errorf("Code = %d, want 403", statusErr.Code)
	}
}

func TestGitHubListerMalformedBody(t *testing.T) {
	srv := newRepoServer(t, http.StatusOK, `{"not":"an array"}`)
	l := &GitHubLister{BaseURL: srv.URL, Client: srv.Client()}

	if _, err := l.List(context.Background(), "jdoe"); err == nil {
		t.Fatal("expected an error for a non-array body")
	}
}

func TestGitHubListerEmptyUser(t *testing.T) {
	l := &GitHubLister{}
	if _, err := l.List(context.Background(), "  "); err == nil {
		t.Fatal("expected an error for an empty user")
	}
}

type stubLister struct {
	list []Project
	err  error
}

func (s stubLister) List(context.Context, string) ([]Project, error) {
	return s.list, s.err
}

func TestPopulateSuccess(t *testing.T) {
	c := NewCatalog()
	if c.Loaded() {
		t.Fatal("new catalog must not be loaded")
	}
	want := []Project{{Name: "demo", Repo: "user/demo"}}

	Populate(context.Background(), stubLister{list: want}, "user", "user/user.github.io", c, nil)

	if !c.Loaded() {
		t.Fatal("catalog should be loaded")
	}
	got := c.Projects()
	if len(got) != 1 || got[0].Name != "demo" {
		t.Errorf("Projects() = %+v", got)
	}
	select {
	case <-c.Ready():
	default:
		t.Error("Ready() should be closed after Populate")
	}
}

func TestPopulateFailureUsesFallback(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c := NewCatalog()

	Populate(context.Background(), stubLister{err: errors.New("boom")}, "user", "user/user.github.io", c, logrus.NewEntry(logger))

	if !c.Loaded() {
		t.Fatal("catalog should be loaded even when the fetch fails")
	}
	got := c.Projects()
	if len(got) != 1 {
		t.Fatalf("want single fallback record, got %+v", got)
	}
	if got[0].Name != "user.github.io" || got[0].Repo != "user/user.github.io" {
		t.Errorf("fallback = %+v", got[0])
	}
	if got[0].URL != "https://github.com/user/user.github.io" {
		t.Errorf("fallback URL = %q", got[0].URL)
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.WarnLevel {
		t.Error("expected a warning to be logged")
	}
}

func TestCatalogResolveTwice(t *testing.T) {
	c := NewCatalog()
	c.Resolve(nil)
	c.Resolve([]Project{{Name: "a"}})
	if got := c.Projects(); len(got) != 1 {
		t.Errorf("second Resolve should replace the list, got %+v", got)
	}
}

func TestCatalogWaitHonoursContext(t *testing.T) {
	c := NewCatalog()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := c.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait = %v, want deadline exceeded", err)
	}
}

func TestProjectsReturnsCopy(t *testing.T) {
	c := NewCatalog()
	c.Resolve([]Project{{Name: "a"}})
	got := c.Projects()
	got[0].Name = "mutated"
	if c.Projects()[0].Name != "a" {
		t.Error("Projects() must not expose internal storage")
	}
}

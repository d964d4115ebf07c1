package projects

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// maxBody caps the listing response; 100 repositories are well under this.
const maxBody = 4 << 20

// GitHubLister lists public repositories through the GitHub REST API.
type GitHubLister struct {
	BaseURL string       // defaults to DefaultAPIURL
	Client  *http.Client // defaults to http.DefaultClient
	PerPage int          // defaults to 100
}

// List implements Lister with a single request to
// /users/{user}/repos?sort=updated&per_page=N.
func (g *GitHubLister) List(ctx context.Context, user string) ([]Project, error) {
	if strings.TrimSpace(user) == "" {
		return nil, errors.New("github user is empty")
	}
	base := g.BaseURL
	if base == "" {
		base = DefaultAPIURL
	}
	perPage := g.PerPage
	if perPage <= 0 {
		perPage = 100
	}
	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=%d",
		strings.TrimRight(base, "/"), url.PathEscape(user), perPage)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch repositories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: endpoint, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read repositories: %w", err)
	}
	return parseRepos(body)
}

// parseRepos maps a GitHub repository array onto Projects, keeping order.
func parseRepos(body []byte) ([]Project, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("malformed repository listing")
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, errors.New("repository listing is not an array")
	}

	var list []Project
	root.ForEach(func(_, repo gjson.Result) bool {
		p := Project{
			Name:        repo.Get("name").String(),
			Description: repo.Get("description").String(),
			URL:         repo.Get("html_url").String(),
			Repo:        repo.Get("full_name").String(),
			Stars:       int(repo.Get("stargazers_count").Int()),
			Language:    repo.Get("language").String(),
		}
		if p.Description == "" {
			p.Description = "No description available"
		}
		if ts := repo.Get("updated_at").String(); ts != "" {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				p.Updated = t
			}
		}
		if p.Name != "" {
			list = append(list, p)
		}
		return true
	})
	return list, nil
}

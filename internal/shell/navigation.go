package shell

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fakeyudi/termfolio/internal/projects"
	"github.com/fakeyudi/termfolio/internal/terminal"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// repoListing is shown inside a repository; real contents are not fetched.
var repoListing = []string{"README.md", "index.html", "package.json", ".gitignore"}

// repoTree is the illustrative tree shown inside a repository. Entries that
// start with "│" are nested and drawn without a connector of their own.
var repoTree = []string{
	"README.md", "index.html", "package.json", "src/",
	"│   ├── components/", "│   ├── styles/", "│   └── utils/",
	"public/", "│   └── assets/", ".gitignore",
}

// ── cd ────────────────────────────────────────────────────────────────────────

func (e *Executor) handleCd(target string) {
	setPath := func(path, repo string) {
		e.Term.SetLocation(path, repo)
		e.Term.AddLine("")
	}
	goHome := func() {
		e.Term.GoHome()
		e.Term.AddLine("")
	}
	cur := e.Term.Path()

	switch {
	case target == "~" || target == "":
		goHome()
		return

	case target == ".." || target == "../":
		if !strings.Contains(cur, "/") {
			goHome()
			return
		}
		parts := strings.Split(cur, "/")
		parent := strings.Join(parts[:len(parts)-1], "/")
		if parent == "" {
			parent = terminal.HomePath
		}
		repo := ""
		if strings.Contains(parent, "projects/") {
			repo, _ = e.Term.Repo()
		}
		setPath(parent, repo)
		return

	case (target == "projects" || target == "projects/") && cur == terminal.HomePath:
		setPath(terminal.ProjectsPath, "")
		return
	}

	if cur != terminal.ProjectsPath {
		e.output([]string{fmt.Sprintf("cd: %s: No such directory", target)}, terminal.ColorError)
		return
	}

	if !e.loaded() {
		e.output([]string{
			"Still loading repositories from GitHub...",
			"Please wait a moment and try again.",
		}, terminal.ColorInfo)
		return
	}

	p, ok := findProject(e.projectList(), target)
	if !ok {
		e.output([]string{
			fmt.Sprintf("cd: %s: No such directory", target),
			`Try "ls" to see available repositories`,
		}, terminal.ColorError)
		return
	}
	e.Term.SetLocation(terminal.ProjectsPath+"/"+p.Name, p.Repo)
	e.output([]string{
		"Entered repository: " + p.Name,
		"GitHub: " + p.URL,
		`Use "ls" to see files, "open <file>" to view on GitHub`,
	}, terminal.ColorAccent)
}

// findProject returns the first project, in list order, whose lowercased name
// equals the target, equals it with whitespace runs turned into hyphens or
// with hyphens turned into underscores, or starts with a target longer than
// three characters. Short prefixes deliberately do not match.
func findProject(list []projects.Project, target string) (projects.Project, bool) {
	t := strings.TrimSuffix(strings.ToLower(target), "/")
	for _, p := range list {
		name := strings.ToLower(p.Name)
		if name == t ||
			whitespaceRun.ReplaceAllString(name, "-") == t ||
			strings.ReplaceAll(name, "-", "_") == t ||
			(utf8.RuneCountInString(t) > 3 && strings.HasPrefix(name, t)) {
			return p, true
		}
	}
	return projects.Project{}, false
}

// ── open ──────────────────────────────────────────────────────────────────────

func (e *Executor) handleOpen(filename string) {
	repo, ok := e.Term.Repo()
	if !ok {
		e.output([]string{`Not in a repository. Use "cd projects" and then "cd <repo-name>" first`}, terminal.ColorError)
		return
	}
	if filename == "" {
		e.output([]string{"Usage: open <filename>"}, terminal.ColorError)
		return
	}

	url := e.FileURL(repo, filename)
	e.output([]string{fmt.Sprintf("Opening %s on GitHub...", filename), url}, terminal.ColorAccent)
	e.open(url)
}

// FileURL builds the browsable URL of filename in repo.
func (e *Executor) FileURL(repo, filename string) string {
	base := e.BrowseURL
	if base == "" {
		base = DefaultBrowseURL
	}
	branch := e.Branch
	if branch == "" {
		branch = "main"
	}
	return fmt.Sprintf("%s/%s/blob/%s/%s",
		strings.TrimRight(base, "/"), repo, branch, strings.TrimLeft(filename, "/"))
}

// ── ls / tree ─────────────────────────────────────────────────────────────────

func (e *Executor) handleLs() {
	path := e.Term.Path()
	_, inRepo := e.Term.Repo()

	switch {
	case path == terminal.HomePath:
		e.Term.AddLine("")
		e.Term.AddOutput("projects/", terminal.ColorAccent)

	case path == terminal.ProjectsPath:
		e.Term.AddLine("")
		list := e.projectList()
		switch {
		case !e.loaded():
			e.Term.AddOutput("Loading repositories from GitHub...", terminal.ColorInfo)
		case len(list) == 0:
			e.Term.AddLine("(empty)")
		default:
			e.Term.AddOutput(fmt.Sprintf("Total: %d repositories", len(list)), terminal.ColorAccent)
			e.Term.AddLine("")
			for _, p := range list {
				entry := p.Name + "/"
				if b := badges(p); b != "" {
					entry += " " + b
				}
				e.Term.AddLine(entry)
			}
		}

	case inRepo:
		lines := []string{
			"Fetching files from GitHub...",
			`Use "open <filename>" to view files on GitHub`,
			"",
			"Common files:",
		}
		for _, f := range repoListing {
			lines = append(lines, "  "+f)
		}
		e.output(lines, terminal.ColorAccent)
		return
	}
	e.Term.AddLine("")
}

func (e *Executor) handleTree() {
	path := e.Term.Path()
	_, inRepo := e.Term.Repo()
	e.Term.AddLine("")

	switch {
	case path == terminal.HomePath:
		e.Term.AddOutput(terminal.HomePath, terminal.ColorAccent)
		e.Term.AddLine("└── projects/")
		if !e.loaded() {
			e.Term.AddOutput("    Loading repositories from GitHub...", terminal.ColorInfo)
			break
		}
		e.drawTree(projectNames(e.projectList()), "    ")

	case path == terminal.ProjectsPath:
		e.Term.AddOutput(terminal.ProjectsPath, terminal.ColorAccent)
		list := e.projectList()
		switch {
		case !e.loaded():
			e.Term.AddOutput("Loading repositories from GitHub...", terminal.ColorInfo)
		case len(list) == 0:
			e.Term.AddLine("(empty)")
		default:
			e.drawTree(projectNames(list), "")
		}

	case inRepo:
		e.Term.AddOutput(path, terminal.ColorAccent)
		for i, item := range repoTree {
			var prefix string
			switch {
			case strings.HasPrefix(item, "│"):
				prefix = ""
			case i < len(repoTree)-1:
				prefix = "├── "
			default:
				prefix = "└── "
			}
			e.Term.AddLine(prefix + item)
		}
		e.Term.AddLine("")
		e.Term.AddOutput(`Use "open <filename>" to view files on GitHub`, terminal.ColorAccent)
	}
	e.Term.AddLine("")
}

func (e *Executor) drawTree(items []string, indent string) {
	for i, item := range items {
		connector := "├── "
		if i == len(items)-1 {
			connector = "└── "
		}
		e.Term.AddLine(indent + connector + item + "/")
	}
}

func projectNames(list []projects.Project) []string {
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = p.Name
	}
	return names
}

package shell

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/fakeyudi/termfolio/internal/terminal"
)

// Suggest returns the closest command name to an unknown input, if any
// command is a plausible fuzzy match for its first word.
func Suggest(input string) (string, bool) {
	word, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(input)), " ")
	if len(word) < 2 {
		return "", false
	}
	matches := fuzzy.Find(word, commandWords())
	if len(matches) == 0 {
		return "", false
	}
	sort.Stable(matches)
	return matches[0].Str, true
}

// Completion is the result of a tab press.
type Completion struct {
	Input      string   // the possibly extended input line
	Candidates []string // set when several completions remain
}

// Complete extends input to the single matching command (or, after `cd ` in
// ~/projects, the single matching project name). With several matches the
// input is extended to their common prefix and the candidates are returned.
func (e *Executor) Complete(input string) Completion {
	lower := strings.ToLower(input)

	if strings.HasPrefix(lower, "cd ") && e.Term.Path() == terminal.ProjectsPath && e.loaded() {
		partial := strings.TrimLeft(input[len("cd "):], " ")
		var cands []string
		for _, p := range e.projectList() {
			if strings.HasPrefix(strings.ToLower(p.Name), strings.ToLower(partial)) {
				cands = append(cands, p.Name)
			}
		}
		return complete("cd ", partial, cands)
	}
	if strings.Contains(lower, " ") {
		return Completion{Input: input}
	}

	var cands []string
	for _, w := range commandWords() {
		if strings.HasPrefix(w, lower) {
			cands = append(cands, w)
		}
	}
	return complete("", input, cands)
}

// complete keeps partial as typed. A lone candidate replaces it; several
// extend it only as far as every candidate agrees, ignoring case.
func complete(prefix, partial string, cands []string) Completion {
	switch len(cands) {
	case 0:
		return Completion{Input: prefix + partial}
	case 1:
		return Completion{Input: prefix + cands[0]}
	}
	first := []rune(cands[0])
	n := len(first)
	for _, c := range cands[1:] {
		n = min(n, foldedPrefixLen(first, []rune(c)))
	}
	typed := utf8.RuneCountInString(partial)
	if n <= typed {
		return Completion{Input: prefix + partial, Candidates: cands}
	}
	return Completion{Input: prefix + partial + string(first[typed:n]), Candidates: cands}
}

// foldedPrefixLen counts the leading runes a and b share, ignoring case.
func foldedPrefixLen(a, b []rune) int {
	n := 0
	for n < len(a) && n < len(b) && unicode.ToLower(a[n]) == unicode.ToLower(b[n]) {
		n++
	}
	return n
}

// ShowCandidates echoes the current input and lists the candidates, the way a
// shell answers a double tab.
func (e *Executor) ShowCandidates(input string, cands []string) {
	e.Term.AddOutput("> "+input, terminal.ColorPrompt)
	e.Term.AddLine(strings.Join(cands, "  "))
}

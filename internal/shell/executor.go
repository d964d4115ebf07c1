// Package shell interprets the commands typed into the portfolio terminal.
// An Executor reads one submitted line, writes its response into a
// terminal.State and, for a few commands, moves through the fake project
// filesystem or opens a URL. User mistakes are never errors: every bad
// command, path or argument has a defined response in the transcript.
package shell

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fakeyudi/termfolio/internal/opener"
	"github.com/fakeyudi/termfolio/internal/profile"
	"github.com/fakeyudi/termfolio/internal/projects"
	"github.com/fakeyudi/termfolio/internal/terminal"
)

// DefaultBrowseURL is the web root that `open` builds file links under.
const DefaultBrowseURL = "https://github.com"

// ProfileSource supplies the profile in effect; *profile.Profile and
// *profile.Live both satisfy it.
type ProfileSource interface {
	Current() *profile.Profile
}

// ProjectSource supplies the repository listing; *projects.Catalog satisfies it.
type ProjectSource interface {
	Loaded() bool
	Projects() []projects.Project
}

// Executor runs commands against one terminal session.
type Executor struct {
	Term     *terminal.State
	Profile  ProfileSource
	Projects ProjectSource
	Opener   opener.Opener // if nil, URLs are only printed

	BrowseURL string // defaults to DefaultBrowseURL
	Branch    string // defaults to "main"

	// OnExit is called by `exit`. Hosts that cannot end the session leave it nil.
	OnExit func()

	Log *logrus.Entry
}

// Execute interprets one submitted line.
func (e *Executor) Execute(raw string) {
	line := strings.TrimSpace(raw)
	e.Term.AddOutput("> "+line, terminal.ColorPrompt)
	if line == "" {
		return
	}

	cmd, arg := Parse(line)
	e.log().WithField("command", line).Debug("execute")

	switch cmd {
	case CmdHelp:
		e.showHelp()
	case CmdAbout:
		e.showAbout()
	case CmdEducation:
		e.showEducation()
	case CmdExperience:
		e.showExperience()
	case CmdSkills:
		e.showSkills()
	case CmdCertifications:
		e.showCertifications()
	case CmdFocus:
		e.showFocus()
	case CmdLanguages:
		e.showLanguages()
	case CmdProjects:
		e.showProjects()
	case CmdContact:
		e.showContact()
	case CmdPwd:
		e.output([]string{e.Term.Path()}, terminal.ColorDefault)
	case CmdLs:
		e.handleLs()
	case CmdTree:
		e.handleTree()
	case CmdCd:
		e.handleCd(arg)
	case CmdOpen:
		e.handleOpen(arg)
	case CmdClear:
		e.Term.ClearOutput()
	case CmdGitHub:
		e.openLink(e.profile().GitHub, "Opening GitHub profile...")
	case CmdLinkedIn:
		e.openLink(e.profile().LinkedIn, "Opening LinkedIn profile...")
	case CmdWhoami:
		p := e.profile()
		e.output([]string{fmt.Sprintf("%s - %s", p.Name, p.Role)}, terminal.ColorDefault)
	case CmdBanner:
		e.Welcome()
	case CmdExit:
		e.handleExit()
	default:
		e.commandNotFound(line)
	}
}

// Welcome prints the startup banner.
func (e *Executor) Welcome() {
	name := strings.ToUpper(e.profile().Name)
	rule := strings.Repeat("=", 33)
	e.Term.AddOutput(rule, terminal.ColorAccent)
	e.Term.AddOutput("  "+name+" - PORTFOLIO", terminal.ColorAccent)
	e.Term.AddOutput(rule, terminal.ColorAccent)
	e.Term.AddLine("")
	e.Term.AddLine(`Type "help" for available commands`)
	e.Term.AddLine("")
}

func (e *Executor) commandNotFound(line string) {
	e.Term.AddOutput("Command not found: "+line, terminal.ColorError)
	e.Term.AddLine(`Type "help" for available commands`)
	if s, ok := Suggest(line); ok {
		e.Term.AddOutput(fmt.Sprintf("Did you mean %q?", s), terminal.ColorInfo)
	}
	e.Term.AddLine("")
}

func (e *Executor) handleExit() {
	if e.OnExit == nil {
		e.output([]string{"This session cannot be closed from here."}, terminal.ColorInfo)
		return
	}
	e.output([]string{"Goodbye."}, terminal.ColorAccent)
	e.OnExit()
}

// ── Output helpers ────────────────────────────────────────────────────────────

// output writes lines in one colour framed by blank lines.
func (e *Executor) output(lines []string, color terminal.Color) {
	e.Term.AddLine("")
	for _, l := range lines {
		e.Term.AddOutput(l, color)
	}
	e.Term.AddLine("")
}

// section writes an accented title followed by default-coloured lines.
func (e *Executor) section(title string, lines []string) {
	e.Term.AddLine("")
	if title != "" {
		e.Term.AddOutput(title, terminal.ColorAccent)
	}
	for _, l := range lines {
		e.Term.AddLine(l)
	}
	e.Term.AddLine("")
}

func bullets(items []string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = "• " + it
	}
	return out
}

func (e *Executor) openLink(url, message string) {
	e.output([]string{message, ""}, terminal.ColorAccent)
	e.open(url)
}

func (e *Executor) open(url string) {
	if e.Opener == nil {
		return
	}
	if err := e.Opener.Open(url); err != nil {
		e.log().WithError(err).WithField("url", url).Warn("open url failed")
		e.Term.AddOutput("Could not open it automatically; copy the link above.", terminal.ColorInfo)
		e.Term.AddLine("")
	}
}

func (e *Executor) profile() *profile.Profile {
	if e.Profile != nil {
		if p := e.Profile.Current(); p != nil {
			return p
		}
	}
	return profile.Default()
}

func (e *Executor) loaded() bool {
	return e.Projects != nil && e.Projects.Loaded()
}

func (e *Executor) projectList() []projects.Project {
	if e.Projects == nil {
		return nil
	}
	return e.Projects.Projects()
}

func (e *Executor) log() *logrus.Entry {
	if e.Log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return e.Log
}

// ── Profile sections ──────────────────────────────────────────────────────────

func (e *Executor) showHelp() {
	lines := make([]string, len(helpEntries))
	for i, h := range helpEntries {
		lines[i] = fmt.Sprintf("  %-14s - %s", h.usage, h.desc)
	}
	e.section("Available commands:", lines)
}

func (e *Executor) showAbout() {
	p := e.profile()
	lines := []string{
		p.Role,
		"",
		"Location: " + p.Location,
		"Specialization: " + p.Specialization,
	}
	if len(p.About) > 0 {
		lines = append(lines, "")
		lines = append(lines, p.About...)
	}
	e.section(p.Name, lines)
}

func (e *Executor) showEducation() {
	ed := e.profile().Education
	lines := []string{"", ed.School, fmt.Sprintf("%s (%s)", ed.Degree, ed.Period)}
	if len(ed.Coursework) > 0 {
		lines = append(lines, "", "Relevant Coursework:")
		lines = append(lines, bullets(ed.Coursework)...)
	}
	e.section("Education:", lines)
}

func (e *Executor) showExperience() {
	x := e.profile().Experience
	lines := []string{
		"",
		x.Title,
		x.Company + " | " + x.Location,
		x.Type + " | " + x.Period,
		"",
	}
	lines = append(lines, bullets(x.Responsibilities)...)
	e.section("Professional Experience:", lines)
}

func (e *Executor) showSkills() {
	e.Term.AddLine("")
	e.Term.AddOutput("Technical Skills:", terminal.ColorAccent)
	for _, cat := range e.profile().Skills {
		e.Term.AddLine("")
		e.Term.AddOutput(cat.Title, terminal.ColorAccent)
		e.Term.AddLine("  " + cat.Items)
	}
	e.Term.AddLine("")
}

func (e *Executor) showCertifications() {
	certs := e.profile().Certifications
	e.Term.AddLine("")
	e.Term.AddOutput("Certifications & Online Courses:", terminal.ColorAccent)
	e.Term.AddLine("")

	for i, c := range certs {
		e.Term.AddOutput(fmt.Sprintf("%d. %s", i+1, c.Name), terminal.ColorAccent)

		details := []string{c.Issuer, "—", c.Year}
		if c.Level != "" {
			details = append(details, "("+c.Level+")")
		}
		if c.Expires != "" {
			details = append(details, "(expires "+c.Expires+")")
		}
		e.Term.AddLine("   " + strings.Join(details, " "))

		if c.URL != "" {
			e.Term.AddLine("   " + c.URL)
		}
		if i < len(certs)-1 {
			e.Term.AddLine("")
		}
	}
	e.Term.AddLine("")
}

func (e *Executor) showFocus() {
	e.section("Current Focus Areas:", bullets(e.profile().CurrentFocus))
}

func (e *Executor) showLanguages() {
	p := e.profile()
	e.section("Languages & Additional Info:", []string{
		"Mother Tongue: " + p.Languages.MotherTongue,
		"Other Languages: " + p.Languages.Other,
		"",
		"Nationality: " + p.Nationality,
		"Driving Licenses: " + p.DrivingLicenses,
	})
}

func (e *Executor) showContact() {
	p := e.profile()
	rows := [][2]string{
		{"Email:", p.Email},
		{"Phone:", p.Phone},
		{"GitHub:", p.GitHub},
		{"LinkedIn:", p.LinkedIn},
		{"Location:", p.Location},
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%-10s %s", r[0], r[1])
	}
	e.section("Contact Information:", lines)
}

func (e *Executor) showProjects() {
	if !e.loaded() {
		e.output([]string{"Loading projects from GitHub..."}, terminal.ColorInfo)
		return
	}
	list := e.projectList()
	if len(list) == 0 {
		e.output([]string{"No projects found"}, terminal.ColorDefault)
		return
	}

	e.Term.AddLine("")
	e.Term.AddOutput(fmt.Sprintf("My Projects (%d total):", len(list)), terminal.ColorAccent)
	e.Term.AddLine("")
	for i, p := range list {
		title := fmt.Sprintf("%d. %s", i+1, p.Name)
		if b := badges(p); b != "" {
			title += " " + b
		}
		e.Term.AddOutput(title, terminal.ColorAccent)
		e.Term.AddLine("   " + p.Description)
		if !p.Updated.IsZero() {
			e.Term.AddLine("   Last updated: " + p.Updated.Format("2006-01-02"))
		}
		e.Term.AddLine("   " + p.URL)
		e.Term.AddLine("")
	}
}

// badges renders the optional "[Language] ⭐N" suffix of a project.
func badges(p projects.Project) string {
	var parts []string
	if p.Language != "" {
		parts = append(parts, "["+p.Language+"]")
	}
	if p.Stars > 0 {
		parts = append(parts, fmt.Sprintf("⭐%d", p.Stars))
	}
	return strings.Join(parts, " ")
}

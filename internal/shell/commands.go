package shell

import "strings"

// Command identifies one terminal command.
type Command int

const (
	CmdUnknown Command = iota
	CmdHelp
	CmdAbout
	CmdEducation
	CmdExperience
	CmdSkills
	CmdCertifications
	CmdFocus
	CmdLanguages
	CmdProjects
	CmdContact
	CmdPwd
	CmdLs
	CmdTree
	CmdCd
	CmdOpen
	CmdClear
	CmdGitHub
	CmdLinkedIn
	CmdWhoami
	CmdBanner
	CmdExit
)

// names maps every spelling of an argument-free command to its Command.
var names = map[string]Command{
	"help":           CmdHelp,
	"about":          CmdAbout,
	"education":      CmdEducation,
	"experience":     CmdExperience,
	"skills":         CmdSkills,
	"certifications": CmdCertifications,
	"certs":          CmdCertifications,
	"focus":          CmdFocus,
	"languages":      CmdLanguages,
	"projects":       CmdProjects,
	"contact":        CmdContact,
	"pwd":            CmdPwd,
	"ls":             CmdLs,
	"tree":           CmdTree,
	"clear":          CmdClear,
	"github":         CmdGitHub,
	"linkedin":       CmdLinkedIn,
	"whoami":         CmdWhoami,
	"banner":         CmdBanner,
	"exit":           CmdExit,
	"quit":           CmdExit,
	// Bare forms of the argument-taking commands.
	"cd":   CmdCd,
	"open": CmdOpen,
}

// helpEntry is one row of the help listing.
type helpEntry struct {
	usage string
	desc  string
}

var helpEntries = []helpEntry{
	{"help", "Show this help message"},
	{"about", "About me"},
	{"education", "Education details"},
	{"experience", "Work experience"},
	{"skills", "Technical skills"},
	{"certifications", "Certifications & courses"},
	{"focus", "Current focus areas"},
	{"languages", "Spoken languages"},
	{"projects", "View my GitHub projects"},
	{"contact", "Contact information"},
	{"ls", "List files/directories"},
	{"tree", "Show directory tree"},
	{"cd <dir>", "Change directory"},
	{"pwd", "Print working directory"},
	{"open <file>", "Open file on GitHub"},
	{"clear", "Clear terminal"},
	{"github", "Open GitHub profile"},
	{"linkedin", "Open LinkedIn profile"},
	{"whoami", "Who is this terminal about"},
	{"banner", "Show the welcome banner"},
	{"exit", "Close the session"},
}

// Parse splits a trimmed input line into a command and its argument.
// Matching is case-insensitive; the argument keeps its original casing.
func Parse(line string) (Command, string) {
	lower := strings.ToLower(line)
	switch {
	case strings.HasPrefix(lower, "cd "):
		return CmdCd, strings.TrimSpace(line[len("cd "):])
	case strings.HasPrefix(lower, "open "):
		return CmdOpen, strings.TrimSpace(line[len("open "):])
	}
	if cmd, ok := names[lower]; ok {
		return cmd, ""
	}
	return CmdUnknown, ""
}

// commandWords returns the completable command names in help order.
func commandWords() []string {
	words := make([]string, 0, len(helpEntries))
	for _, e := range helpEntries {
		w, _, _ := strings.Cut(e.usage, " ")
		words = append(words, w)
	}
	return words
}

package profile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RunSetup runs the interactive setup wizard, reading answers from in and
// writing prompts to out. If existing is non-nil its values are offered as
// defaults (edit mode); otherwise the sample profile seeds the prompts.
// Sections not covered by the wizard (skills, certifications, ...) are kept
// and can be edited in the JSON file directly.
func RunSetup(in io.Reader, out io.Writer, existing *Profile) (*Profile, error) {
	r := bufio.NewReader(in)

	ask := func(prompt, defaultVal string) (string, error) {
		if defaultVal != "" {
			fmt.Fprintf(out, "%s [%s]: ", prompt, defaultVal)
		} else {
			fmt.Fprintf(out, "%s: ", prompt)
		}
		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return defaultVal, nil
		}
		return line, nil
	}

	prof := Default()
	if existing != nil {
		cp := *existing
		prof = &cp
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  ┌─────────────────────────────────┐")
	fmt.Fprintln(out, "  │   termfolio — profile setup     │")
	fmt.Fprintln(out, "  └─────────────────────────────────┘")
	fmt.Fprintln(out)

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"  Your name", &prof.Name},
		{"  Role / headline", &prof.Role},
		{"  Specialization", &prof.Specialization},
		{"  Location", &prof.Location},
		{"  Email", &prof.Email},
		{"  Phone", &prof.Phone},
		{"  GitHub username", &prof.GitHubUsername},
		{"  LinkedIn URL", &prof.LinkedIn},
	}
	for _, f := range fields {
		v, err := ask(f.prompt, *f.dst)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	if prof.GitHubUsername != "" {
		prof.GitHub = "https://github.com/" + prof.GitHubUsername
	}

	fmt.Fprintln(out)
	return prof, nil
}

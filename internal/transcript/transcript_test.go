package transcript_test

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/fakeyudi/termfolio/internal/terminal"
	"github.com/fakeyudi/termfolio/internal/theme"
	"github.com/fakeyudi/termfolio/internal/transcript"
)

func sample() *transcript.Transcript {
	s := terminal.New()
	s.AddOutput("> pwd", terminal.ColorPrompt)
	s.AddLine("")
	s.AddOutput("Command not found: x", terminal.ColorError)
	s.SetLocation(terminal.ProjectsPath+"/demo", "user/demo")
	return transcript.FromState(s, []string{"https://github.com/user/demo"})
}

func TestPlainRenderer(t *testing.T) {
	out, err := (&transcript.PlainRenderer{}).Render(sample())
	if err != nil {
		t.Fatal(err)
	}
	want := "> pwd\n\nCommand not found: x\n"
	if string(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestANSIRendererKeepsText(t *testing.T) {
	r := &transcript.ANSIRenderer{Styles: theme.Green.Styles(nil)}
	out, err := r.Render(sample())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(out), "\n") != 3 {
		t.Errorf("want three lines, got %q", out)
	}
	if !strings.Contains(string(out), "Command not found: x") {
		t.Errorf("text missing from %q", out)
	}
}

func TestJSONRenderer(t *testing.T) {
	out, err := (&transcript.JSONRenderer{}).Render(sample())
	if err != nil {
		t.Fatal(err)
	}
	doc := gjson.ParseBytes(out)
	if got := doc.Get("path").String(); got != "~/projects/demo" {
		t.Errorf("path = %q", got)
	}
	if got := doc.Get("repo").String(); got != "user/demo" {
		t.Errorf("repo = %q", got)
	}
	if got := doc.Get("lines.2.color").String(); got != "error" {
		t.Errorf("lines.2.color = %q, want error", got)
	}
	if got := doc.Get("opened.0").String(); got != "https://github.com/user/demo" {
		t.Errorf("opened.0 = %q", got)
	}
}

func TestForFormat(t *testing.T) {
	for _, f := range []string{"", "text", "ansi", "json"} {
		if _, err := transcript.ForFormat(f, theme.Green.Styles(nil)); err != nil {
			t.Errorf("ForFormat(%q): %v", f, err)
		}
	}
	if _, err := transcript.ForFormat("yaml", theme.Styles{}); err == nil {
		t.Error("expected an error for yaml")
	}
}

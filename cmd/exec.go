package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/termfolio/internal/logger"
	"github.com/fakeyudi/termfolio/internal/opener"
	"github.com/fakeyudi/termfolio/internal/shell"
	"github.com/fakeyudi/termfolio/internal/terminal"
	"github.com/fakeyudi/termfolio/internal/theme"
	"github.com/fakeyudi/termfolio/internal/transcript"
)

var (
	execFormat string
	execWait   time.Duration
	execBanner bool
	execOpen   bool
)

var execCmd = &cobra.Command{
	Use:   "exec [command]...",
	Short: "Run portfolio commands without the TUI and print the transcript",
	Long: `Each argument is one command line, run in order in a fresh session.
With no arguments, command lines are read from stdin.

  termfolio exec about "cd projects" ls
  echo experience | termfolio exec --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		palette, err := theme.Lookup(cfg.Theme)
		if err != nil {
			return err
		}
		r, err := transcript.ForFormat(execFormat, palette.Styles(lipgloss.DefaultRenderer()))
		if err != nil {
			return err
		}

		lines := args
		if len(lines) == 0 {
			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				lines = append(lines, sc.Text())
			}
			if err := sc.Err(); err != nil {
				return fmt.Errorf("reading commands: %w", err)
			}
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		cat := startCatalog(ctx)
		if execWait > 0 && needsProjects(lines) {
			waitCtx, stop := context.WithTimeout(ctx, execWait)
			if err := cat.Wait(waitCtx); err != nil {
				logger.Named("cli").WithField("wait", execWait).Warn("repository list not ready, continuing without it")
			}
			stop()
		}

		rec := &opener.Recorder{}
		term := terminal.New()
		ex := &shell.Executor{
			Term:      term,
			Profile:   activeProfile,
			Projects:  cat,
			Opener:    rec,
			BrowseURL: cfg.BrowseURL,
			Log:       logger.Named("exec"),
		}
		if execBanner {
			ex.Welcome()
		}
		for _, line := range lines {
			ex.Execute(line)
		}

		opened := rec.Drain()
		if execOpen {
			o, err := opener.FromMode(cfg.OpenWith)
			if err != nil {
				return err
			}
			for _, u := range opened {
				if err := o.Open(u); err != nil {
					logger.Named("cli").WithError(err).WithField("url", u).Warn("could not open URL")
				}
			}
		}

		out, err := r.Render(transcript.FromState(term, opened))
		if err != nil {
			return fmt.Errorf("rendering transcript: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

// needsProjects reports whether any line touches the repository list, so
// exec only blocks on the fetch when the answer depends on it.
func needsProjects(lines []string) bool {
	for _, l := range lines {
		c, _ := shell.Parse(strings.TrimSpace(l))
		switch c {
		case shell.CmdProjects, shell.CmdCd, shell.CmdLs, shell.CmdTree, shell.CmdOpen:
			return true
		}
	}
	return false
}

func init() {
	execCmd.Flags().StringVarP(&execFormat, "format", "f", "text", "output format: text, ansi, json")
	execCmd.Flags().DurationVar(&execWait, "wait", 10*time.Second, "how long to wait for the repository list (0 disables)")
	execCmd.Flags().BoolVar(&execBanner, "banner", false, "start the transcript with the welcome banner")
	execCmd.Flags().BoolVar(&execOpen, "open", false, "also open URLs with the configured opener")
	rootCmd.AddCommand(execCmd)
}

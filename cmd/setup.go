package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/termfolio/internal/config"
	"github.com/fakeyudi/termfolio/internal/profile"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create or edit your portfolio profile (re-run anytime)",
	// Bypass the normal PersistentPreRunE so setup works before a profile exists.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := profileFlag
		if path == "" {
			p, err := profile.Path()
			if err != nil {
				return fmt.Errorf("locating profile: %w", err)
			}
			path = p
		}
		return runSetup(cmd.InOrStdin(), cmd.OutOrStdout(), path)
	},
}

// runSetup runs the interactive setup wizard and saves the result to path.
// An existing profile at path seeds the prompts.
func runSetup(in io.Reader, out io.Writer, path string) error {
	existing, err := profile.LoadFile(path)
	switch {
	case errors.Is(err, profile.ErrNotFound):
		existing = nil
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Welcome to termfolio! Let's set up your portfolio.")
	case err != nil:
		return fmt.Errorf("loading profile: %w", err)
	}

	prof, err := profile.RunSetup(in, out, existing)
	if err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}

	if err := profile.SaveFile(path, prof); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	fmt.Fprintf(out, "  ✓ Profile saved to %s\n", path)
	fmt.Fprintln(out, "  Skills, experience and certifications can be edited in that file directly.")
	if err := writeStarterConfig(out); err != nil {
		fmt.Fprintf(out, "  ⚠ Could not write a starter config: %v\n", err)
	}
	fmt.Fprintln(out, "  Run 'termfolio' to see it, or 'termfolio serve' to share it over SSH.")
	fmt.Fprintln(out)
	return nil
}

// writeStarterConfig saves the default settings to the global config file so
// there is something to edit. An existing file, or an explicit --config, is
// left alone.
func writeStarterConfig(out io.Writer) error {
	if configFlag != "" {
		return nil
	}
	path, err := config.GlobalPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := config.Save(path, config.Defaults()); err != nil {
		return err
	}
	fmt.Fprintf(out, "  ✓ Starter config written to %s\n", path)
	return nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

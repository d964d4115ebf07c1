package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/termfolio/internal/config"
	"github.com/fakeyudi/termfolio/internal/logger"
	"github.com/fakeyudi/termfolio/internal/opener"
	"github.com/fakeyudi/termfolio/internal/profile"
	"github.com/fakeyudi/termfolio/internal/projects"
	"github.com/fakeyudi/termfolio/internal/theme"
	"github.com/fakeyudi/termfolio/internal/tui"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// activeProfile holds the loaded user profile, or the sample profile when
// none has been set up yet.
var activeProfile *profile.Profile

// profilePath is where activeProfile was (or would be) read from.
var profilePath string

var (
	configFlag  string
	profileFlag string
	themeFlag   string
	noBootFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "termfolio",
	Short: "A retro terminal portfolio you can browse from the command line",
	Long: `termfolio shows a developer portfolio as a small terminal: type "help"
for the commands, "cd projects" to walk through GitHub repositories and
"open <file>" to view a file on GitHub.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configFlag)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = c
		if themeFlag != "" {
			cfg.Theme = themeFlag
		}
		if noBootFlag {
			skip := true
			cfg.NoBoot = &skip
		}
		if err := logger.Configure(cfg.LogLevel); err != nil {
			return err
		}

		profilePath = profileFlag
		if profilePath == "" {
			if profilePath, err = profile.Path(); err != nil {
				return fmt.Errorf("locating profile: %w", err)
			}
		}
		p, err := profile.LoadFile(profilePath)
		switch {
		case errors.Is(err, profile.ErrNotFound):
			activeProfile = profile.Default()
			// Only nag people sitting at a terminal, never pipes or tests.
			if term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd()) {
				fmt.Fprintln(cmd.ErrOrStderr(), "  No profile yet, showing sample data. Run 'termfolio setup' to create yours.")
			}
		case err != nil:
			return fmt.Errorf("loading profile: %w", err)
		default:
			activeProfile = p
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		closer, path, err := logger.SetupFile(cfg.LogPath)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer closer.Close()
		log := logger.Named("cli")
		log.WithField("log", path).Debug("starting local session")

		open, err := opener.FromMode(cfg.OpenWith)
		if err != nil {
			return err
		}
		palette, err := theme.Lookup(cfg.Theme)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		return tui.Run(tui.Options{
			Profile:    activeProfile,
			Catalog:    startCatalog(ctx),
			Opener:     open,
			BrowseURL:  cfg.BrowseURL,
			Palette:    palette,
			PromptUser: promptUser(),
			SkipBoot:   cfg.SkipBoot(),
			Log:        logger.Named("tui"),
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ~/.config/termfolio/config.toml)")
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "profile file (default ~/.config/termfolio/profile.json)")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "colour theme: "+strings.Join(theme.Names(), ", "))
	rootCmd.Flags().BoolVar(&noBootFlag, "no-boot", false, "skip the power-on animation")
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// githubUser is the account whose repositories are listed: the config value
// when set, otherwise the profile's GitHub username.
func githubUser() string {
	if cfg.GitHubUser != "" {
		return cfg.GitHubUser
	}
	if activeProfile != nil {
		return activeProfile.GitHubUsername
	}
	return ""
}

// fallbackRepo is listed when the repository fetch fails.
func fallbackRepo() string {
	if cfg.FallbackRepo != "" {
		return cfg.FallbackRepo
	}
	if u := githubUser(); u != "" {
		return u + "/termfolio"
	}
	return "fakeyudi/termfolio"
}

func promptUser() string {
	if cfg.PromptUser != "" {
		return cfg.PromptUser
	}
	return "guest"
}

// startCatalog returns an unresolved catalog and fetches the repository list
// into it in the background.
func startCatalog(ctx context.Context) *projects.Catalog {
	cat := projects.NewCatalog()
	lister := &projects.GitHubLister{
		BaseURL: cfg.GitHubAPIURL,
		Client:  &http.Client{Timeout: cfg.Timeout()},
	}
	go projects.Populate(ctx, lister, githubUser(), fallbackRepo(), cat, logger.Named("projects"))
	return cat
}

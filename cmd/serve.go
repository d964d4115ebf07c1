package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/termfolio/internal/httpapi"
	"github.com/fakeyudi/termfolio/internal/logger"
	"github.com/fakeyudi/termfolio/internal/opener"
	"github.com/fakeyudi/termfolio/internal/profile"
	"github.com/fakeyudi/termfolio/internal/session"
	"github.com/fakeyudi/termfolio/internal/sshserver"
	"github.com/fakeyudi/termfolio/internal/theme"
	"github.com/fakeyudi/termfolio/internal/tui"
)

var (
	serveSSH      bool
	serveHTTP     bool
	serveSSHAddr  string
	serveHTTPAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio terminal over SSH and/or an HTTP JSON API",
	Long: `serve hosts the terminal for visitors. Every SSH connection gets its
own session (ssh -p 2222 host); the HTTP API serves browser front ends.
The profile file is watched and reloaded on change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !serveSSH && !serveHTTP {
			return errors.New("nothing to serve: enable --ssh or --http")
		}
		logger.SetOutput(cmd.ErrOrStderr())
		log := logger.Named("serve")

		palette, err := theme.Lookup(cfg.Theme)
		if err != nil {
			return err
		}
		hostKey := cfg.HostKeyPath
		if hostKey == "" {
			dir, err := profile.ConfigDir()
			if err != nil {
				return fmt.Errorf("locating config dir: %w", err)
			}
			hostKey = filepath.Join(dir, "ssh_host_ed25519")
		}
		sshAddr := cfg.SSHAddr
		if serveSSHAddr != "" {
			sshAddr = serveSSHAddr
		}
		httpAddr := cfg.HTTPAddr
		if serveHTTPAddr != "" {
			httpAddr = serveHTTPAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		live := profile.NewLive(activeProfile)
		if profile.Exists(profilePath) {
			go func() {
				if err := live.Watch(ctx, profilePath, logger.Named("profile")); err != nil {
					log.WithError(err).Warn("profile hot reload disabled")
				}
			}()
		}
		cat := startCatalog(ctx)

		errCh := make(chan error, 2)
		running := 0
		if serveSSH {
			running++
			// The visitor's browser is on another machine; links are only printed.
			srv := &sshserver.Server{
				Addr:        sshAddr,
				HostKeyPath: hostKey,
				Session: tui.Options{
					Profile:    live,
					Catalog:    cat,
					Opener:     opener.None{},
					BrowseURL:  cfg.BrowseURL,
					Palette:    palette,
					PromptUser: promptUser(),
					SkipBoot:   cfg.SkipBoot(),
				},
				Log: logger.Named("ssh"),
			}
			go func() { errCh <- srv.ListenAndServe(ctx) }()
		}
		if serveHTTP {
			running++
			api := &httpapi.API{
				Sessions: session.NewStore(session.Template{
					Profile:   live,
					Projects:  cat,
					BrowseURL: cfg.BrowseURL,
					Log:       logger.Named("session"),
				}, session.DefaultTTL),
				Projects: cat,
				Log:      logger.Named("http"),
			}
			go func() { errCh <- httpapi.ListenAndServe(ctx, httpAddr, nil, api) }()
		}

		// The first listener to fail takes the others down with it.
		var firstErr error
		for ; running > 0; running-- {
			if err := <-errCh; err != nil && firstErr == nil {
				firstErr = err
				stop()
			}
		}
		log.Info("stopped")
		return firstErr
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveSSH, "ssh", true, "serve the TUI over SSH")
	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "serve the HTTP JSON API")
	serveCmd.Flags().StringVar(&serveSSHAddr, "ssh-addr", "", "SSH listen address (overrides ssh_addr)")
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http-addr", "", "HTTP listen address (overrides http_addr)")
	rootCmd.AddCommand(serveCmd)
}

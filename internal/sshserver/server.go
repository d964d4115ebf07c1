// Package sshserver serves the portfolio terminal over SSH: every session
// with a pty gets its own terminal state and Bubble Tea program, all sharing
// one project catalog.
package sshserver

import (
	"context"
	"io"
	"net"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	gliderssh "github.com/gliderlabs/ssh"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"

	"github.com/fakeyudi/termfolio/internal/tui"
)

// Server exposes the terminal over SSH. No authentication is asked for.
type Server struct {
	Addr        string
	HostKeyPath string
	Listener    net.Listener // used instead of Addr when set
	IdleTimeout time.Duration

	// Session is the template every session's TUI options are copied from.
	Session tui.Options
	Log     *logrus.Entry
}

// ListenAndServe starts the SSH server and shuts down on context cancellation.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.Log == nil {
		s.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	signer, err := EnsureHostKey(s.HostKeyPath)
	if err != nil {
		return err
	}

	server := &gliderssh.Server{
		Addr:        s.Addr,
		Handler:     s.handleSession,
		IdleTimeout: s.IdleTimeout,
	}
	server.AddHostKey(signer)

	errCh := make(chan error, 1)
	go func() {
		if s.Listener != nil {
			errCh <- server.Serve(s.Listener)
			return
		}
		errCh <- server.ListenAndServe()
	}()
	s.Log.WithFields(logrus.Fields{
		"addr":        s.addr(),
		"fingerprint": Fingerprint(signer),
	}).Info("ssh server listening")

	select {
	case <-ctx.Done():
		_ = server.Close()
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) addr() string {
	if s.Listener != nil {
		return s.Listener.Addr().String()
	}
	return s.Addr
}

func (s *Server) handleSession(sess gliderssh.Session) {
	log := s.Log.WithFields(logrus.Fields{
		"user":   sess.User(),
		"remote": sess.RemoteAddr().String(),
	})

	pty, winCh, ok := sess.Pty()
	if !ok {
		log.Info("ssh session rejected: pty required")
		_, _ = io.WriteString(sess, "termfolio needs an interactive terminal; try ssh -t\n")
		_ = sess.Exit(1)
		return
	}
	log = log.WithField("term", pty.Term)
	log.Info("ssh session opened")

	renderer := lipgloss.NewRenderer(sess)
	renderer.SetColorProfile(colorProfile(pty.Term, sess.Environ()))

	opts := s.Session
	opts.Renderer = renderer
	opts.Log = log
	if u := sess.User(); u != "" {
		opts.PromptUser = u
	}

	p := tea.NewProgram(tui.New(opts),
		tea.WithInput(sess),
		tea.WithOutput(sess),
		tea.WithContext(sess.Context()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go forwardResizes(winCh, p.Send)

	start := time.Now()
	if _, err := p.Run(); err != nil && sess.Context().Err() == nil {
		log.WithError(err).Warn("ssh session ended with error")
	}
	log.WithField("duration", time.Since(start).Round(time.Second)).Info("ssh session closed")
	_ = sess.Exit(0)
}

// forwardResizes turns pty window changes into Bubble Tea size messages until
// winCh closes. The channel's first value is the window from the pty request.
func forwardResizes(winCh <-chan gliderssh.Window, send func(tea.Msg)) {
	for win := range winCh {
		send(tea.WindowSizeMsg{Width: win.Width, Height: win.Height})
	}
}

// colorProfile picks the richest colour profile the client advertises.
func colorProfile(term string, environ []string) termenv.Profile {
	for _, kv := range environ {
		if kv == "COLORTERM=truecolor" || kv == "COLORTERM=24bit" {
			return termenv.TrueColor
		}
	}
	switch {
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	case term == "" || term == "dumb":
		return termenv.Ascii
	default:
		return termenv.ANSI
	}
}

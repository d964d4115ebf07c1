// Package opener performs the "open this URL" side effect of the terminal's
// github, linkedin and open commands.
package opener

import (
	"fmt"
	"io"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// Launcher output would corrupt the TUI.
func init() {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// Opener hands a URL to something outside the terminal.
type Opener interface {
	Open(url string) error
}

// Browser opens URLs in the system web browser.
type Browser struct{}

func (Browser) Open(url string) error {
	return browser.OpenURL(url)
}

// Clipboard copies URLs to the system clipboard.
type Clipboard struct{}

func (Clipboard) Open(url string) error {
	return clipboard.WriteAll(url)
}

// None ignores URLs; the terminal already prints them.
type None struct{}

func (None) Open(string) error { return nil }

// Recorder remembers every URL it is asked to open. Hosts that cannot open
// anything themselves (the HTTP API) drain it and pass the URLs to the client.
type Recorder struct {
	mu   sync.Mutex
	urls []string
}

func (r *Recorder) Open(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
	return nil
}

// Drain returns the recorded URLs and clears the list.
func (r *Recorder) Drain() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.urls
	r.urls = nil
	return out
}

// FromMode returns the opener for a config "open_with" value.
func FromMode(mode string) (Opener, error) {
	switch mode {
	case "", "browser":
		return Browser{}, nil
	case "clipboard":
		return Clipboard{}, nil
	case "none":
		return None{}, nil
	}
	return nil, fmt.Errorf("unknown open_with mode %q (supported: browser, clipboard, none)", mode)
}

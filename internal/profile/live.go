package profile

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Live holds a profile that can be swapped while sessions are reading it.
type Live struct {
	p atomic.Pointer[Profile]
}

// NewLive returns a holder initialised with prof.
func NewLive(prof *Profile) *Live {
	l := &Live{}
	l.p.Store(prof)
	return l
}

// Current returns the profile in effect.
func (l *Live) Current() *Profile {
	return l.p.Load()
}

// Set replaces the profile in effect.
func (l *Live) Set(prof *Profile) {
	l.p.Store(prof)
}

// Watch reloads the profile at path whenever it is written or replaced, until
// ctx is cancelled. The parent directory is watched because saves replace the
// file by rename. A malformed file is logged and the previous profile kept.
func (l *Live) Watch(ctx context.Context, path string, log *logrus.Entry) error {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			prof, err := LoadFile(path)
			if err != nil {
				log.WithError(err).Warn("profile reload failed, keeping previous profile")
				continue
			}
			l.Set(prof)
			log.WithField("path", path).Info("profile reloaded")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watcher errors are non-fatal; continue watching.
			log.WithError(err).Debug("profile watcher error")
		}
	}
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"cogentcore.org/compositor/base/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/google/go-cmp/cmp"
	"github.com/jinzhu/copier"
)

// Clone returns a deep copy of the settings.
func (s *Settings) Clone() *Settings {
	c := &Settings{}
	errors.Log(copier.CopyWithOption(c, s, copier.Option{DeepCopy: true}))
	return c
}

// Watch calls fn with the settings in filename every time the file
// changes, until ctx is done. Writes that leave the settings unchanged
// are skipped, as are files that fail to load, which are logged. Each
// call gets its own copy of the settings. The directory of the file is
// watched, so replacing the file is seen too.
func Watch(ctx context.Context, filename string, fn func(s *Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(filename)
	if err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config: watch %s: %w", filename, err)
	}
	slog.Debug("config: watching", "file", abs)

	var last *Settings
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			s := errors.Log1(Open(abs))
			if s == nil || cmp.Equal(s, last) {
				continue
			}
			last = s
			slog.Info("config: reloaded", "file", abs)
			fn(s.Clone())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			errors.Log(err)
		}
	}
}

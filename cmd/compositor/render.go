// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"

	"cogentcore.org/compositor/base/errors"
	"cogentcore.org/compositor/base/iox/imagex"
	"cogentcore.org/compositor/base/logx"
	"cogentcore.org/compositor/config"
	"cogentcore.org/compositor/layout"
	"cogentcore.org/compositor/window"
	"github.com/spf13/cobra"
)

func newRenderCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render the scene of the settings file to an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Open(f.config)
			if err != nil {
				return err
			}
			f.setupLog(s)
			_, err = f.render(layout.New(window.NewManager()), s)
			return err
		},
	}
}

// setupLog installs the default logger at the level of the flags, or of
// the settings if no flag is given.
func (f *flags) setupLog(s *config.Settings) {
	if f.debug || f.verbose || f.quiet {
		logx.UserLevel = logx.LevelFromFlags(f.debug, f.verbose, f.quiet)
	} else if s != nil {
		logx.UserLevel = logx.LevelFromString(s.LogLevel)
	}
	logx.SetDefaultLogger()
}

// render builds the scene of s in e, applies the focus and hover flags,
// and saves the display of the root to the output file. Problems with
// the scene are logged; only failing to write the image is an error.
func (f *flags) render(e *layout.Engine, s *config.Settings) (*window.Window, error) {
	root, err := s.Build(e)
	if root == nil {
		return nil, err
	}
	errors.Log(err)
	if f.focus != "" {
		if w := e.Windows.Find(root.Handle, f.focus); w != nil {
			e.SetFocus(w.Handle)
		} else {
			slog.Warn("no window to focus", "name", f.focus)
		}
	}
	for _, name := range f.hover {
		if w := e.Windows.Find(root.Handle, name); w != nil {
			e.SetAction(w.Handle, window.ActionHovered)
		} else {
			slog.Warn("no window to hover", "name", name)
		}
	}
	if err := imagex.Save(root.Display, f.output); err != nil {
		return root, fmt.Errorf("render: %w", err)
	}
	slog.Info("rendered", "output", f.output, "windows", e.Windows.Len())
	return root, nil
}

func newDefaultsCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Write the default settings to the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.setupLog(nil)
			return config.Save(config.Defaults(), f.config)
		},
	}
}

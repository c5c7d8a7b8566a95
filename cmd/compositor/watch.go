// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os/signal"
	"syscall"

	"cogentcore.org/compositor/base/errors"
	"cogentcore.org/compositor/config"
	"cogentcore.org/compositor/dispatch"
	"cogentcore.org/compositor/layout"
	"cogentcore.org/compositor/window"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newWatchCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Render the scene again every time the settings file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Open(f.config)
			if err != nil {
				return err
			}
			f.setupLog(s)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return f.watch(ctx, s)
		},
	}
}

// watch renders s, then renders again on the dispatch loop each time the
// settings file changes, until ctx is done.
func (f *flags) watch(ctx context.Context, s *config.Settings) error {
	e := layout.New(window.NewManager())
	loop := dispatch.New(e, s.FPS)
	var root *window.Window

	rerender := func(s *config.Settings) {
		if root != nil {
			e.Destroy(root.Handle)
		}
		r, err := f.render(e, s)
		errors.Log(err)
		root = r
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(ctx)
	})
	g.Go(func() error {
		if err := loop.Do(ctx, func(context.Context) { rerender(s) }); err != nil {
			return err
		}
		return config.Watch(ctx, f.config, func(s *config.Settings) {
			errors.Log(loop.Do(ctx, func(context.Context) { rerender(s) }))
		})
	})
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

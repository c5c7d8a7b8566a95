// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command compositor renders the window scenes described by settings
// files into images.
package main

import (
	"os"

	"cogentcore.org/compositor/base/errors"
	"github.com/spf13/cobra"
)

// flags are the flags shared by all commands.
type flags struct {
	config  string
	output  string
	focus   string
	hover   []string
	verbose bool
	debug   bool
	quiet   bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:          "compositor",
		Short:        "Render window scenes with edge nimbus and background effects",
		SilenceUsage: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.config, "config", "c", "compositor.toml", "settings file (TOML or YAML)")
	pf.StringVarP(&f.output, "output", "o", "compositor.png", "image file to write")
	pf.StringVar(&f.focus, "focus", "", "name of the window to focus")
	pf.StringSliceVar(&f.hover, "hover", nil, "names of the windows to hover")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log info messages")
	pf.BoolVar(&f.debug, "vv", false, "log debug messages")
	pf.BoolVarP(&f.quiet, "quiet", "q", false, "only log errors")
	errors.Must(cmd.MarkPersistentFlagFilename("config", "toml", "yaml", "yml"))
	errors.Must(cmd.MarkPersistentFlagFilename("output", "png", "jpg", "jpeg", "bmp"))

	cmd.AddCommand(newRenderCmd(f), newWatchCmd(f), newDefaultsCmd(f))
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

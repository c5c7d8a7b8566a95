// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/compositor/base/iox/imagex"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scene = `
[scene]
width = 120
height = 80
color = "#000080"

[[scene.windows]]
name = "panel"
x = 10
y = 10
width = 50
height = 40
color = "#ffffff"
nimbus = "hover"
`

func run(args ...string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(os.Stderr)
	return cmd.Execute()
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "scene.toml")
	out := filepath.Join(dir, "scene.png")
	require.NoError(t, os.WriteFile(cfg, []byte(scene), 0666))

	require.NoError(t, run("render", "-q", "-c", cfg, "-o", out, "--hover", "panel"))
	img, _, err := imagex.Open(out)
	require.NoError(t, err)
	at := func(x, y int) color.RGBA { return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA) }
	assert.Equal(t, color.RGBA{0, 0, 128, 255}, at(100, 70))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, at(30, 30))
	// the nimbus of the hovered panel
	assert.NotEqual(t, color.RGBA{0, 0, 128, 255}, at(8, 30))
}

func TestFileFlags(t *testing.T) {
	pf := newRootCmd().PersistentFlags()
	assert.Equal(t, []string{"toml", "yaml", "yml"}, pf.Lookup("config").Annotations[cobra.BashCompFilenameExt])
	assert.Contains(t, pf.Lookup("output").Annotations[cobra.BashCompFilenameExt], "png")
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, run("render", "-q", "-c", filepath.Join(dir, "missing.toml")))

	cfg := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(scene), 0666))
	assert.Error(t, run("render", "-q", "-c", cfg, "-o", filepath.Join(dir, "scene.gif")))
}

func TestDefaults(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, run("defaults", "-q", "-c", cfg))
	require.NoError(t, run("render", "-q", "-c", cfg, "-o", filepath.Join(t.TempDir(), "out.bmp")))
}

// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	conf, err := NewHousingConfig("/srv/housing")
	require.NoError(t, err)

	require.Equal(t, "/srv/housing", conf.ProjectRoot)
	require.Equal(t, "correlation_matrix", conf.Plot.Stem)
	require.Equal(t, "png", conf.Plot.Format)
	require.Equal(t, 300, conf.Plot.Resolution)
	require.Empty(t, conf.Plot.SavePath)
	require.False(t, conf.Plot.Show)
	require.Equal(t, "INFO", conf.LogLevel)
	require.Equal(t, "127.0.0.1", conf.Minio.Address)
	require.Equal(t, 9000, conf.Minio.Port)
	require.Equal(t, "housing", conf.Minio.Bucket)
	require.Equal(t, filepath.Join("/srv/housing", "visuals"), conf.VisualPath())
}

// defaults come only from the struct tags, never from the process arguments
func TestDefaultsIgnoreCommandLine(t *testing.T) {
	saved := os.Args
	t.Cleanup(func() { os.Args = saved })
	os.Args = []string{"housing", "--format", "svg", "--resolution", "72", "--upload"}

	args, err := NewHousingArgs()
	require.NoError(t, err)
	require.Equal(t, "png", args.Format)
	require.Equal(t, 300, args.Resolution)
	require.False(t, args.Upload)
}

func TestDefaultSavePathFollowsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	savePath, err := DefaultSavePath()
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(cwd, "images"), savePath)
}

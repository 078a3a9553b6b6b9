// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package projectpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjectPath(t *testing.T) {
	root, err := Root()
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(root))

	goMod := filepath.Join(root, "go.mod")
	if _, err := os.Stat(goMod); os.IsNotExist(err) {
		t.Fatalf("go.mod does not exist at %s; the project path does not seem to point to the root of the repo", goMod)
	}
}

func TestProjectPathIgnoresWorkingDirectory(t *testing.T) {
	before, err := Root()
	require.NoError(t, err)

	t.Chdir(t.TempDir())

	after, err := Root()
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.Equal(t, before, MustRoot())
}

// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package projectpath

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/internetofwater/housing/pkg"
)

// the number of directories between this file's directory and the project root
const levelsToRoot = 2

// Root returns the absolute path of the project root. It is derived from the
// location of this source file, not the working directory, so tests and tools
// resolve the same directory no matter where they are run from
func Root() (string, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok || file == "" {
		return "", fmt.Errorf("%w: could not determine the location of the project path resolver", pkg.ErrConfiguration)
	}

	dir := filepath.Dir(file)
	for range levelsToRoot {
		dir = filepath.Dir(dir)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", pkg.ErrConfiguration, err)
	}
	return root, nil
}

// MustRoot is Root for callers that cannot continue without it
func MustRoot() string {
	root, err := Root()
	if err != nil {
		panic(err)
	}
	return root
}

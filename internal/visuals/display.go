// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package visuals

import "github.com/pkg/browser"

// A Displayer shows a written image to the user
type Displayer interface {
	Display(path string) error
}

// SystemViewer opens the image with the platform's default viewer
type SystemViewer struct{}

func (SystemViewer) Display(path string) error {
	return browser.OpenFile(path)
}

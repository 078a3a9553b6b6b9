// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package pkg

import "errors"

// Error kinds shared by every stage of the pipeline.
// Callers match them with errors.Is; the wrapped error
// carries the path or detail that caused the failure
var (
	// the project root could not be resolved
	ErrConfiguration = errors.New("configuration error")
	// the source spreadsheet does not exist
	ErrDataNotFound = errors.New("data not found")
	// the source spreadsheet exists but could not be parsed
	ErrDataParse = errors.New("malformed spreadsheet")
	// the output directory is missing or cannot be written to
	ErrDestination = errors.New("destination not writable")
	// the input has no numeric columns to correlate
	ErrDegenerateInput = errors.New("no numeric columns")
	// the requested image format has no encoder
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

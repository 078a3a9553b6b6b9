// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"path/filepath"

	"github.com/internetofwater/housing/internal/config"

	"github.com/rocketlaunchr/dataframe-go"
	log "github.com/sirupsen/logrus"
)

// HousingRawDataPath is where the raw housing spreadsheet lives within the project
func HousingRawDataPath(projectRoot string) string {
	return filepath.Join(projectRoot, "data", "raw", "housing.xlsx")
}

// LoadHousingRawData reads the raw housing spreadsheet verbatim.
// cfg.Data.File overrides the conventional location; a relative
// override is taken relative to the project root
func LoadHousingRawData(ctx context.Context, cfg config.HousingConfig) (*dataframe.DataFrame, error) {
	path := HousingRawDataPath(cfg.ProjectRoot)
	if cfg.Data.File != "" {
		path = cfg.Data.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.ProjectRoot, path)
		}
	}
	log.Debugf("Loading housing data from %s", path)
	return ReadExcel(ctx, path, ReadOptions{Sheet: cfg.Data.Sheet})
}

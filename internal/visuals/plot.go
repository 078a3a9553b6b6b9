// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package visuals

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/internetofwater/housing/internal/config"
	"github.com/internetofwater/housing/internal/correlation"
	"github.com/internetofwater/housing/internal/opentelemetry"
	"github.com/internetofwater/housing/pkg"

	"github.com/rocketlaunchr/dataframe-go"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultStem       = "correlation_matrix"
	DefaultFormat     = "png"
	DefaultResolution = 300
	// file name used when plotting to the project's visual path
	VisualPathStem = "correlation"
)

// An image written to disk by the visualizer
type Artifact struct {
	Path   string
	Format string
	// hex encoded sha256 of the bytes written
	SHA256 string
}

type plotSettings struct {
	displayer Displayer
}

type Option func(*plotSettings)

// WithDisplayer replaces the viewer used when PlotConfig.Show is set
func WithDisplayer(d Displayer) Option {
	return func(s *plotSettings) {
		s.displayer = d
	}
}

// PlotCorrelation renders the correlation matrix of the numeric columns in df
// as an annotated heatmap and writes it to <SavePath>/<Stem>.<Format>.
// Zero values in cfg fall back to the defaults. The destination directory
// must already exist; it is never created
func PlotCorrelation(ctx context.Context, df *dataframe.DataFrame, cfg config.PlotConfig, opts ...Option) (Artifact, error) {
	span, _ := opentelemetry.SubSpanFromCtx(ctx)
	defer span.End()

	settings := plotSettings{displayer: SystemViewer{}}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := withDefaults(cfg)
	if err != nil {
		return Artifact{}, err
	}

	matrix, err := correlation.Pearson(df)
	if err != nil {
		return Artifact{}, err
	}
	log.Debugf("Computed %dx%d correlation matrix", matrix.Dim(), matrix.Dim())

	if err := checkDestination(cfg.SavePath); err != nil {
		return Artifact{}, err
	}

	start := time.Now()
	artifact, err := render(matrix, cfg)
	if err != nil {
		return Artifact{}, err
	}
	opentelemetry.RecordRender(artifact.Format, time.Since(start).Seconds())
	log.Infof("Correlation matrix saved to %s", artifact.Path)

	if cfg.Show {
		if err := settings.displayer.Display(artifact.Path); err != nil {
			return artifact, fmt.Errorf("failed to display %s: %w", artifact.Path, err)
		}
	}
	return artifact, nil
}

// PlotCorrelationToVisualPath is PlotCorrelation with the destination fixed to
// <project root>/visuals/correlation.<Format>; the remaining plot options
// still come from hc.Plot
func PlotCorrelationToVisualPath(ctx context.Context, hc config.HousingConfig, df *dataframe.DataFrame, opts ...Option) (Artifact, error) {
	cfg := hc.Plot
	cfg.SavePath = hc.VisualPath()
	cfg.Stem = VisualPathStem
	return PlotCorrelation(ctx, df, cfg, opts...)
}

func withDefaults(cfg config.PlotConfig) (config.PlotConfig, error) {
	if cfg.SavePath == "" {
		savePath, err := config.DefaultSavePath()
		if err != nil {
			return cfg, fmt.Errorf("%w: %w", pkg.ErrDestination, err)
		}
		cfg.SavePath = savePath
	}
	if cfg.Stem == "" {
		cfg.Stem = DefaultStem
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	cfg.Format = strings.ToLower(strings.TrimPrefix(cfg.Format, "."))
	if cfg.Resolution <= 0 {
		cfg.Resolution = DefaultResolution
	}
	return cfg, nil
}

func checkDestination(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", pkg.ErrDestination, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", pkg.ErrDestination, dir)
	}
	return nil
}

// render draws the heatmap onto an in memory canvas and then encodes it to disk
func render(matrix correlation.Matrix, cfg config.PlotConfig) (Artifact, error) {
	heat, bar, err := heatmapPlots(matrix)
	if err != nil {
		return Artifact{}, err
	}

	canvas, err := newCanvas(cfg.Format, heatmapSide+colorBarWidth, heatmapSide, cfg.Resolution)
	if err != nil {
		return Artifact{}, err
	}
	drawHeatmap(heat, bar, canvas)

	path := filepath.Join(cfg.SavePath, cfg.Stem+"."+cfg.Format)
	digest, err := writeImage(path, canvas)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Path: path, Format: cfg.Format, SHA256: digest}, nil
}

// writeImage writes the canvas to path and returns the sha256 of what was written
func writeImage(path string, canvas io.WriterTo) (digest string, err error) {
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", pkg.ErrDestination, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", pkg.ErrDestination, closeErr)
		}
	}()

	hash := sha256.New()
	if _, err := canvas.WriteTo(io.MultiWriter(file, hash)); err != nil {
		return "", fmt.Errorf("%w: failed to write %s: %w", pkg.ErrDestination, path, err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

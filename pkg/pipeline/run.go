// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"fmt"

	"github.com/internetofwater/housing/internal/config"
	"github.com/internetofwater/housing/internal/dataset"
	"github.com/internetofwater/housing/internal/opentelemetry"
	"github.com/internetofwater/housing/internal/projectpath"
	"github.com/internetofwater/housing/internal/storage/s3"
	"github.com/internetofwater/housing/internal/visuals"

	log "github.com/sirupsen/logrus"
)

// The outcome of one pipeline run
type Report struct {
	// shape of the loaded dataset
	Rows    int
	Columns int
	// the image that was written
	Artifact visuals.Artifact
	// object key of the uploaded image; empty unless uploading was enabled
	ObjectKey string
}

// DefaultConfig resolves the project root and returns the default config for it
func DefaultConfig() (config.HousingConfig, error) {
	root, err := projectpath.Root()
	if err != nil {
		return config.HousingConfig{}, err
	}
	return config.NewHousingConfig(root)
}

// Run loads the raw housing data, plots its correlation matrix and,
// if enabled, uploads the image to s3
func Run(ctx context.Context, cfg config.HousingConfig, opts ...visuals.Option) (Report, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return Report{}, fmt.Errorf("invalid log level %s: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	if cfg.UseOtel || cfg.OtelEndpoint != "" {
		if cfg.OtelEndpoint == "" {
			cfg.OtelEndpoint = opentelemetry.DefaultTracingEndpoint
		}
		log.Infof("Starting opentelemetry traces and exporting to: %s", cfg.OtelEndpoint)
		if err := opentelemetry.InitTracer("housing", cfg.OtelEndpoint); err != nil {
			return Report{}, err
		}
		defer opentelemetry.Shutdown()
		if err := opentelemetry.InitMetrics(cfg.OtelEndpoint); err != nil {
			return Report{}, err
		}
	}

	span, ctx := opentelemetry.SubSpanFromCtxWithName(ctx, "housing_pipeline")
	defer span.End()

	df, err := dataset.LoadHousingRawData(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	report := Report{Rows: df.NRows(), Columns: len(df.Series)}

	if cfg.UseVisualPath {
		report.Artifact, err = visuals.PlotCorrelationToVisualPath(ctx, cfg, df, opts...)
	} else {
		report.Artifact, err = visuals.PlotCorrelation(ctx, df, cfg.Plot, opts...)
	}
	if err != nil {
		return report, err
	}

	if !cfg.Upload {
		return report, nil
	}

	client, err := s3.NewMinioClientWrapper(cfg.Minio)
	if err != nil {
		return report, err
	}
	if err := client.MakeDefaultBucket(ctx); err != nil {
		return report, fmt.Errorf("failed to prepare bucket %s: %w", cfg.Minio.Bucket, err)
	}
	key := client.ArtifactKey(report.Artifact.Path)
	if err := client.UploadFile(ctx, key, report.Artifact.Path); err != nil {
		return report, err
	}
	report.ObjectKey = key
	return report, nil
}

// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexflint/go-arg"
)

// The top level config for all housing operations
type HousingConfig struct {
	// Absolute path of the project root; every relative
	// path below is resolved against it
	ProjectRoot string
	Data        DataConfig
	Plot        PlotConfig
	Minio       MinioConfig
	LogLevel    string
	UseOtel     bool
	// OTLP gRPC endpoint for traces
	OtelEndpoint string
	// Plot to <root>/visuals/correlation instead of the save path
	UseVisualPath bool
	// Upload the rendered image to s3 after writing it
	Upload bool
}

// The config for reading the raw dataset
type DataConfig struct {
	// leave blank to use the conventional data/raw/housing.xlsx
	File  string `arg:"--data-file" help:"spreadsheet to load instead of data/raw/housing.xlsx"`
	Sheet string `arg:"--sheet" help:"sheet to read; defaults to the first sheet in the workbook"`
}

// The config for the correlation heatmap
type PlotConfig struct {
	SavePath   string `arg:"--save-path" help:"directory the image is written to; defaults to <cwd>/images"`
	Stem       string `arg:"--stem" help:"file name of the image without extension" default:"correlation_matrix"`
	Format     string `arg:"--format" help:"image format; png, jpg, tiff, svg or pdf" default:"png"`
	Resolution int    `arg:"--resolution" help:"dots per inch for raster formats" default:"300"`
	Show       bool   `arg:"--show" help:"display the image after it is written"`
}

// The config for minio/s3 operations
type MinioConfig struct {
	Address   string `arg:"--address" help:"The address of the s3 server" default:"127.0.0.1"`
	Port      int    `arg:"--port" default:"9000"`
	Accesskey string `arg:"--s3-access-key" help:"Access Key (i.e. username)" default:"minioadmin"`
	Secretkey string `arg:"--s3-secret-key" help:"Secret Key (i.e. password)" default:"minioadmin"`
	Bucket    string `arg:"--bucket" help:"The s3 bucket artifacts are uploaded to" default:"housing"`
	Prefix    string `arg:"--prefix" help:"prefix in s3 artifacts are stored under" default:"images"`
	Region    string `arg:"--region" help:"region for the s3 server"`
	SSL       bool   `arg:"--ssl" help:"Use SSL when connecting to s3"`
}

// HousingArgs is the flat form of the config; go-arg only
// understands embedded structs so the sections are embedded here
// and split apart again by ToStructuredConfig
type HousingArgs struct {
	DataConfig
	PlotConfig
	MinioConfig

	LogLevel      string `arg:"--log-level" default:"INFO"`
	UseOtel       bool   `arg:"--use-otel"`
	OtelEndpoint  string `arg:"--otel-endpoint" help:"OpenTelemetry endpoint"`
	UseVisualPath bool   `arg:"--use-visual-path" help:"write the image to <root>/visuals/correlation"`
	Upload        bool   `arg:"--upload" help:"upload the image to s3 after writing it"`
}

// NewHousingArgs returns the args populated with their declared defaults.
// Nothing is read from the command line or the environment
func NewHousingArgs() (HousingArgs, error) {
	args := HousingArgs{}
	parser, err := arg.NewParser(arg.Config{IgnoreEnv: true}, &args)
	if err != nil {
		return HousingArgs{}, fmt.Errorf("failed to build config parser: %w", err)
	}
	if err := parser.Parse([]string{}); err != nil {
		return HousingArgs{}, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	return args, nil
}

// ToStructuredConfig converts the args to a structured config
// that can be used for more config isolation
func (h HousingArgs) ToStructuredConfig(projectRoot string) HousingConfig {
	return HousingConfig{
		ProjectRoot:   projectRoot,
		Data:          h.DataConfig,
		Plot:          h.PlotConfig,
		Minio:         h.MinioConfig,
		LogLevel:      h.LogLevel,
		UseOtel:       h.UseOtel,
		OtelEndpoint:  h.OtelEndpoint,
		UseVisualPath: h.UseVisualPath,
		Upload:        h.Upload,
	}
}

// NewHousingConfig returns the default config rooted at projectRoot
func NewHousingConfig(projectRoot string) (HousingConfig, error) {
	args, err := NewHousingArgs()
	if err != nil {
		return HousingConfig{}, err
	}
	return args.ToStructuredConfig(projectRoot), nil
}

// DefaultSavePath is <cwd>/images, evaluated at call time
func DefaultSavePath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, "images"), nil
}

// VisualPath is the fixed directory used by the visual path variant
func (c HousingConfig) VisualPath() string {
	return filepath.Join(c.ProjectRoot, "visuals")
}

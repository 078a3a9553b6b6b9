// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package opentelemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	metricInterfaces "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

var MeterProvider *metric.MeterProvider
var RenderHistogram metricInterfaces.Float64Histogram
var ArtifactCounter metricInterfaces.Int64Counter

const DefaultMetricCollectorEndpoint = "127.0.0.1:4317"

func InitMetrics(endpoint string) error {
	exporter, err := otlpmetricgrpc.New(
		context.Background(),
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return fmt.Errorf("failed to create metric exporter: %w", err)
	}
	MeterProvider = metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(10*time.Second))),
	)
	otel.SetMeterProvider(MeterProvider)

	RenderHistogram, err = MeterProvider.Meter("housing").Float64Histogram("render_seconds",
		metricInterfaces.WithDescription("Time to render and write a correlation heatmap"),
	)
	if err != nil {
		return err
	}

	ArtifactCounter, err = MeterProvider.Meter("housing").Int64Counter("artifacts_written")
	return err
}

// RecordRender records one written image; a no-op when metrics are off
func RecordRender(format string, seconds float64) {
	if MeterProvider == nil {
		return
	}
	attrs := metricInterfaces.WithAttributes(attribute.String("format", format))
	RenderHistogram.Record(context.Background(), seconds, attrs)
	ArtifactCounter.Add(context.Background(), 1, attrs)
}

// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package opentelemetry

import (
	"context"
	"fmt"
	"runtime"

	log "github.com/sirupsen/logrus"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace" // name this differently so it doesn't conflict with the tracer interface
	"go.opentelemetry.io/otel/trace"
)

const DefaultTracingEndpoint = "127.0.0.1:4317"

// the tracer used for all spans; nil until InitTracer is called
var Tracer trace.Tracer
var TracerProvider *sdktrace.TracerProvider

// SubSpanFromCtx starts a span named after the calling function.
// If tracing was never initialized the returned span is a no-op
// so callers do not need to check whether otel is enabled
func SubSpanFromCtx(ctx context.Context) (trace.Span, context.Context) {
	if Tracer == nil {
		return trace.SpanFromContext(context.Background()), ctx
	}

	pc, _, _, _ := runtime.Caller(1)
	name := runtime.FuncForPC(pc).Name()
	newCtx, span := Tracer.Start(ctx, name)
	return span, newCtx
}

// SubSpanFromCtxWithName is SubSpanFromCtx with an explicit span name
func SubSpanFromCtxWithName(ctx context.Context, name string) (trace.Span, context.Context) {
	if Tracer == nil {
		return trace.SpanFromContext(context.Background()), ctx
	}
	newCtx, span := Tracer.Start(ctx, name)
	return span, newCtx
}

// InitTracer exports spans over gRPC to the given collector endpoint.
// The exporter connects lazily so this succeeds even if no collector is running
func InitTracer(serviceName string, endpoint string) error {
	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(attribute.String("service.name", serviceName)),
	)
	if err != nil {
		return fmt.Errorf("failed to build otel resource: %w", err)
	}

	client := otlptracegrpc.NewClient(
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)

	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	TracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(TracerProvider)
	Tracer = TracerProvider.Tracer(serviceName)

	log.Infof("OpenTelemetry tracer initialized, sending traces to %s", endpoint)
	return nil
}

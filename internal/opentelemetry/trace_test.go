// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package opentelemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpanIsNoopWithoutTracer(t *testing.T) {
	require.Nil(t, Tracer)
	span, ctx := SubSpanFromCtx(context.Background())
	defer span.End()
	require.NotNil(t, ctx)
	require.False(t, span.SpanContext().IsValid())
}

func TestInitTracer(t *testing.T) {
	require.NoError(t, InitTracer("housing-test", DefaultTracingEndpoint))
	defer Shutdown()
	require.NotNil(t, Tracer)

	span, ctx := SubSpanFromCtx(context.Background())
	require.True(t, span.SpanContext().IsValid())

	child, _ := SubSpanFromCtxWithName(ctx, "child")
	require.Equal(t, span.SpanContext().TraceID(), child.SpanContext().TraceID())
	child.End()
	span.End()
}

func TestRecordRenderWithoutMetricsIsNoop(t *testing.T) {
	require.Nil(t, MeterProvider)
	RecordRender("png", 0.5)
}

func TestInitMetrics(t *testing.T) {
	require.NoError(t, InitMetrics(DefaultMetricCollectorEndpoint))
	require.NotNil(t, RenderHistogram)
	require.NotNil(t, ArtifactCounter)
	RecordRender("png", 0.5)

	// shutdown tries a final export; with no collector that is only logged
	Shutdown()
	require.Nil(t, MeterProvider)
}

// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package opentelemetry

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Shutdown flushes and stops whichever providers were started.
// Call it once when the pipeline is done
func Shutdown() {
	if TracerProvider != nil {
		if err := TracerProvider.ForceFlush(context.Background()); err != nil {
			log.Errorf("Error flushing traces; is the collector for traces running?; %v", err)
		}
		if err := TracerProvider.Shutdown(context.Background()); err != nil {
			log.Errorf("Error shutting down tracer provider: %v", err)
		}
		TracerProvider = nil
		Tracer = nil
	}

	if MeterProvider != nil {
		if err := MeterProvider.Shutdown(context.Background()); err != nil {
			log.Errorf("Error shutting down meter provider: %v", err)
		}
		MeterProvider = nil
	}
}

package openai

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type invocationMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	retryCount      metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

// Instrument creation runs once; concurrent Complete calls share the
// published instruments.
var (
	metricsOnce  sync.Once
	metricsReady bool
	invMetrics   invocationMetrics
)

func ensureMetrics() {
	metricsOnce.Do(func() {
		meter := otel.Meter("github.com/providervault/ai-service/openai")

		requestCount, err := meter.Int64Counter(
			"ai.model.request.count",
			metric.WithDescription("Number of model invocations"),
		)
		if err != nil {
			return
		}
		requestDuration, err := meter.Float64Histogram(
			"ai.model.request.duration",
			metric.WithDescription("Model invocation duration in milliseconds"),
			metric.WithUnit("ms"),
		)
		if err != nil {
			return
		}
		requestErrors, err := meter.Int64Counter(
			"ai.model.request.errors",
			metric.WithDescription("Number of model invocation errors"),
		)
		if err != nil {
			return
		}
		retryCount, err := meter.Int64Counter(
			"ai.model.request.retries",
			metric.WithDescription("Number of model invocation retries"),
		)
		if err != nil {
			return
		}
		rateLimitWait, err := meter.Float64Histogram(
			"ai.model.rate_limit.wait",
			metric.WithDescription("Time spent waiting for the model rate limiter in milliseconds"),
			metric.WithUnit("ms"),
		)
		if err != nil {
			return
		}

		invMetrics = invocationMetrics{
			requestCount:    requestCount,
			requestDuration: requestDuration,
			requestErrors:   requestErrors,
			retryCount:      retryCount,
			rateLimitWait:   rateLimitWait,
		}
		metricsReady = true
	})
}

func recordInvocation(ctx context.Context, model string, duration time.Duration, err error) {
	ensureMetrics()
	if !metricsReady {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}

	invMetrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	invMetrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		invMetrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordRetry(ctx context.Context, model string) {
	ensureMetrics()
	if !metricsReady {
		return
	}
	invMetrics.retryCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	))
}

func recordRateLimitWait(ctx context.Context, model string, wait time.Duration) {
	ensureMetrics()
	if !metricsReady {
		return
	}
	invMetrics.rateLimitWait.Record(ctx, float64(wait.Milliseconds()), metric.WithAttributes(
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	))
}

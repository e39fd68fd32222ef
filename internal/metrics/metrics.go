// Package metrics provides a small interface for counting submission and
// confirmation events. Implementations can forward to Prometheus, DataDog,
// or just structured logs.
package metrics

import (
	"context"
	"log/slog"
	"sync"
)

// Metrics defines the interface for recording client metrics.
type Metrics interface {
	// IncrementCounter increments a counter metric by the specified value.
	// Counters track values that only increase, like total send attempts.
	IncrementCounter(ctx context.Context, name string, value uint64) error

	// UpdateGauge sets a gauge metric to the specified value.
	UpdateGauge(ctx context.Context, name string, value float64) error
}

// Counter names recorded by the submitter.
const (
	CounterSendAttempts   = "tx_send_attempts"
	CounterSendFailures   = "tx_send_failures"
	CounterConfirmed      = "tx_confirmed"
	CounterConfirmTimeout = "tx_confirm_timeouts"
	CounterRejected       = "tx_program_rejections"
)

// Gauge names recorded by the submitter.
const (
	GaugeConfirmLatency = "tx_confirm_latency_seconds"
)

// NoopMetrics discards all metrics.
type NoopMetrics struct{}

// NewNoopMetrics creates a metrics sink that discards everything.
func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) IncrementCounter(ctx context.Context, name string, value uint64) error {
	return nil
}

func (n *NoopMetrics) UpdateGauge(ctx context.Context, name string, value float64) error {
	return nil
}

// SlogMetrics accumulates counters in memory and logs every update.
type SlogMetrics struct {
	logger *slog.Logger

	mu       sync.Mutex
	counters map[string]uint64
	gauges   map[string]float64
}

// NewSlogMetrics creates a metrics sink that records to the given logger.
func NewSlogMetrics(logger *slog.Logger) *SlogMetrics {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogMetrics{
		logger:   logger,
		counters: make(map[string]uint64),
		gauges:   make(map[string]float64),
	}
}

// IncrementCounter increments a counter and logs the new total.
func (m *SlogMetrics) IncrementCounter(ctx context.Context, name string, value uint64) error {
	m.mu.Lock()
	m.counters[name] += value
	total := m.counters[name]
	m.mu.Unlock()

	m.logger.Debug("metric counter", "name", name, "total", total)
	return nil
}

// UpdateGauge sets a gauge and logs the value.
func (m *SlogMetrics) UpdateGauge(ctx context.Context, name string, value float64) error {
	m.mu.Lock()
	m.gauges[name] = value
	m.mu.Unlock()

	m.logger.Debug("metric gauge", "name", name, "value", value)
	return nil
}

// Counter returns the current value of a counter.
func (m *SlogMetrics) Counter(name string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

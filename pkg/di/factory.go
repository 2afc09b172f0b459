package di

import (
	"go.uber.org/zap"

	"github.com/ssargent/calltrace/pkg/calllog"
	"github.com/ssargent/calltrace/pkg/logging"
	"github.com/ssargent/calltrace/pkg/metrics"
)

// LoggerFactory creates the loggers commands write diagnostics to
type LoggerFactory interface {
	// CreateLogger builds a logger at level in format
	CreateLogger(level, format string) (*zap.Logger, error)
}

// MetricsFactory creates per-run metric sets
type MetricsFactory interface {
	CreateMetrics() *metrics.Metrics
}

// PipelineFactory creates decode pipelines
type PipelineFactory interface {
	CreatePipeline(opts calllog.Options, sink calllog.Sink) *calllog.Pipeline
}

// DefaultLoggerFactory is the default implementation of LoggerFactory
type DefaultLoggerFactory struct{}

// NewLoggerFactory creates a new logger factory
func NewLoggerFactory() LoggerFactory {
	return &DefaultLoggerFactory{}
}

// CreateLogger builds a stderr logger
func (f *DefaultLoggerFactory) CreateLogger(level, format string) (*zap.Logger, error) {
	return logging.New(level, format)
}

// DefaultMetricsFactory is the default implementation of MetricsFactory
type DefaultMetricsFactory struct{}

// NewMetricsFactory creates a new metrics factory
func NewMetricsFactory() MetricsFactory {
	return &DefaultMetricsFactory{}
}

// CreateMetrics creates metrics on a fresh registry
func (f *DefaultMetricsFactory) CreateMetrics() *metrics.Metrics {
	return metrics.NewMetrics()
}

// DefaultPipelineFactory is the default implementation of PipelineFactory
type DefaultPipelineFactory struct{}

// NewPipelineFactory creates a new pipeline factory
func NewPipelineFactory() PipelineFactory {
	return &DefaultPipelineFactory{}
}

// CreatePipeline creates a pipeline reporting to sink
func (f *DefaultPipelineFactory) CreatePipeline(opts calllog.Options, sink calllog.Sink) *calllog.Pipeline {
	return calllog.NewPipeline(opts, sink)
}

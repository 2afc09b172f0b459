package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ssargent/calltrace/pkg/calllog"
	"github.com/ssargent/calltrace/pkg/metrics"
)

type stubLoggerFactory struct {
	logger *zap.Logger
}

func (s *stubLoggerFactory) CreateLogger(string, string) (*zap.Logger, error) {
	return s.logger, nil
}

func TestNewContainer(t *testing.T) {
	c := NewContainer()

	logger, err := c.GetLoggerFactory().CreateLogger("info", "json")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	m := c.GetMetricsFactory().CreateMetrics()
	assert.NotNil(t, m.Registry())

	p := c.GetPipelineFactory().CreatePipeline(calllog.Options{}, calllog.NopSink{})
	assert.NotNil(t, p)
}

func TestContainer_Overrides(t *testing.T) {
	c := NewContainer()
	nop := zap.NewNop()
	c.SetLoggerFactory(&stubLoggerFactory{logger: nop})

	logger, err := c.GetLoggerFactory().CreateLogger("anything", "at all")
	require.NoError(t, err)
	assert.Same(t, nop, logger)

	shared := metrics.NewMetrics()
	c.SetMetricsFactory(metricsFunc(func() *metrics.Metrics { return shared }))
	assert.Same(t, shared, c.GetMetricsFactory().CreateMetrics())
}

type metricsFunc func() *metrics.Metrics

func (f metricsFunc) CreateMetrics() *metrics.Metrics { return f() }

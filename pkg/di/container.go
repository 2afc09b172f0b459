// Package di provides dependency injection container
package di

// Container holds all the dependencies for the application
type Container struct {
	loggerFactory   LoggerFactory
	metricsFactory  MetricsFactory
	pipelineFactory PipelineFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		loggerFactory:   NewLoggerFactory(),
		metricsFactory:  NewMetricsFactory(),
		pipelineFactory: NewPipelineFactory(),
	}
}

// GetLoggerFactory returns the logger factory
func (c *Container) GetLoggerFactory() LoggerFactory {
	return c.loggerFactory
}

// GetMetricsFactory returns the metrics factory
func (c *Container) GetMetricsFactory() MetricsFactory {
	return c.metricsFactory
}

// GetPipelineFactory returns the pipeline factory
func (c *Container) GetPipelineFactory() PipelineFactory {
	return c.pipelineFactory
}

// SetLoggerFactory allows overriding the logger factory (for testing)
func (c *Container) SetLoggerFactory(factory LoggerFactory) {
	c.loggerFactory = factory
}

// SetMetricsFactory allows overriding the metrics factory (for testing)
func (c *Container) SetMetricsFactory(factory MetricsFactory) {
	c.metricsFactory = factory
}

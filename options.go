package recocheck

type options struct {
	mode    CountMode
	logger  *Logger
	metrics MetricsCollector
}

// Option configures a DoubleCountCheck.
type Option func(*options)

// WithCountMode configures how repeated associations from one particle
// are counted. The default is CountRaw, which matches the reference
// behavior this check was ported from.
func WithCountMode(mode CountMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithLogger configures the structured logger used for per-hit
// diagnostics and check outcomes. Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// check invocations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

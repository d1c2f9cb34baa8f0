package decode

import (
	"runtime"

	"go.uber.org/zap"
)

// config holds the tunable knobs for a single Parse call. The zero
// value is not valid; newConfig populates defaults.
type config struct {
	alignWorkers int
	tableWorkers int
	maxFragments int
	logger       *zap.Logger
}

// Option configures a Parse call.
type Option func(*config)

// WithAlignWorkers bounds how many of the 256 candidate cipher offsets
// Align tries concurrently. n <= 0 falls back to GOMAXPROCS.
func WithAlignWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.alignWorkers = n
		}
	}
}

// WithTableWorkers bounds how many tables' record reassembly (C4) runs
// concurrently. The default, 1, processes tables strictly
// sequentially, matching the core's synchronous-by-default contract.
func WithTableWorkers(n int) Option {
	return func(c *config) { c.tableWorkers = n }
}

// WithMaxFragments caps how many fragments a single record's chain may
// traverse before it is treated as corrupt (cycle guard). 0 or less
// keeps the default.
func WithMaxFragments(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxFragments = n
		}
	}
}

// WithLogger attaches a zap logger for debug-level recovery logging.
// Without one, recoveries remain silent (a no-op logger is used).
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

const defaultMaxFragments = 1 << 16

func newConfig(opts []Option) *config {
	c := &config{
		alignWorkers: runtime.GOMAXPROCS(0),
		tableWorkers: 1,
		maxFragments: defaultMaxFragments,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.alignWorkers <= 0 {
		c.alignWorkers = 1
	}
	if c.tableWorkers <= 0 {
		c.tableWorkers = 1
	}
	return c
}

package chameleon

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/muzin/chameleon/internal/apply"
	"github.com/muzin/chameleon/logger"
)

// Flags are the runtime switches of a transform call.
type Flags = apply.Flags

const defaultWorkers = 8

// Option configures a Chameleon.
type Option func(*Chameleon)

// WithLogger sets the logger. The default drops every record.
func WithLogger(l logger.Logger) Option {
	return func(c *Chameleon) {
		if l != nil {
			c.log = l
		}
	}
}

// WithDefaults sets the flags used by transform calls that do not override them.
func WithDefaults(flags Flags) Option {
	return func(c *Chameleon) {
		c.defaults = flags
	}
}

// WithWorkers bounds the number of concurrent derivations during bulk registration.
func WithWorkers(n int) Option {
	return func(c *Chameleon) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithMeter sets the meter the registry instruments are created from.
func WithMeter(m metric.Meter) Option {
	return func(c *Chameleon) {
		c.meter = m
	}
}

// TransformOption overrides one flag for a single transform call.
type TransformOption func(*Flags)

// AdaptMismatch turns structure-mismatch adaptation on or off: recursion into nested
// values and sequences of a different type, and stringification of sequences.
func AdaptMismatch(on bool) TransformOption {
	return func(f *Flags) {
		f.AdaptMismatch = on
	}
}

// SkipNull leaves destination fields untouched when the source value is absent.
func SkipNull(on bool) TransformOption {
	return func(f *Flags) {
		f.SkipNull = on
	}
}

func (c *Chameleon) flags(opts []TransformOption) Flags {
	f := c.defaults
	for _, opt := range opts {
		opt(&f)
	}

	return f
}

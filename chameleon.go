package chameleon

import (
	"reflect"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/metric"

	"github.com/muzin/chameleon/config"
	"github.com/muzin/chameleon/internal/analyze"
	"github.com/muzin/chameleon/logger"
	"github.com/muzin/chameleon/pair"
)

// Chameleon is a registry of conversion environments keyed by ordered type pairs.
// It derives an environment the first time a pair is seen and reuses it afterwards.
// A Chameleon is safe for concurrent use.
type Chameleon struct {
	// mu guards table and the envs maps of every bucket.
	mu    sync.RWMutex
	table map[reflect.Type]*bucket

	log      logger.Logger
	defaults Flags
	workers  int
	meter    metric.Meter
	metrics  *metrics

	derivations atomic.Int64

	selectorsMu sync.Mutex
	selectors   []pair.Selector
}

// bucket holds the environments of one source type.
type bucket struct {
	// train serializes derivations involving the source type.
	train sync.Mutex
	envs  map[reflect.Type]*Environment
}

// Stats reports registry counters.
type Stats struct {
	// Derivations counts trainings: one per adapted pair, both directions included.
	Derivations int64
	// Environments counts cached directed environments.
	Environments int
}

// New returns an empty registry.
func New(opts ...Option) *Chameleon {
	c := &Chameleon{
		table:   make(map[reflect.Type]*bucket),
		log:     logger.Nop(),
		workers: defaultWorkers,
	}

	for _, opt := range opts {
		opt(c)
	}

	m, err := newMetrics(c.meter)
	if err != nil {
		c.log.Warn("metrics disabled", "error", err)
	}

	c.metrics = m

	return c
}

// NewFromConfig returns a registry configured from cfg. Options are applied after
// the configuration and win over it.
func NewFromConfig(cfg *config.Config, opts ...Option) *Chameleon {
	if cfg == nil {
		cfg = config.Default()
	}

	base := []Option{
		WithDefaults(Flags{
			AdaptMismatch: cfg.Transform.AdaptMismatch,
			SkipNull:      cfg.Transform.SkipNull,
		}),
		WithWorkers(cfg.Registry.Workers),
		WithLogger(logger.NewLogger(&logger.Config{
			Level:      logger.LogLevel(cfg.Log.Level),
			JSON:       cfg.Log.JSON,
			TimeFormat: logger.DefaultConfig().TimeFormat,
		})),
	}

	return New(append(base, opts...)...)
}

// Environment returns the cached environment for (src, dst), without deriving it.
func (c *Chameleon) Environment(src, dst reflect.Type) (*Environment, bool) {
	if src == nil || dst == nil {
		return nil, false
	}

	return c.lookup(analyze.Base(src), analyze.Base(dst))
}

// Stats returns a snapshot of the registry counters.
func (c *Chameleon) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, b := range c.table {
		n += len(b.envs)
	}

	return Stats{Derivations: c.derivations.Load(), Environments: n}
}

func (c *Chameleon) lookup(src, dst reflect.Type) (*Environment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.table[src]
	if !ok {
		return nil, false
	}

	env, ok := b.envs[dst]

	return env, ok
}

// bucket returns the bucket of src, inserting it when missing. The table lock is
// held for the check-and-insert only.
func (c *Chameleon) bucket(src reflect.Type) *bucket {
	c.mu.RLock()
	b, ok := c.table[src]
	c.mu.RUnlock()

	if ok {
		return b
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if b, ok = c.table[src]; !ok {
		b = &bucket{envs: make(map[reflect.Type]*Environment)}
		c.table[src] = b
	}

	return b
}

// store publishes both directions under one critical section, so readers never see
// a new environment in one direction next to an old one in the other.
func (c *Chameleon) store(envs ...*Environment) {
	for _, env := range envs {
		c.bucket(env.source)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, env := range envs {
		c.table[env.source].envs[env.dest] = env
	}
}

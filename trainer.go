package chameleon

import (
	"fmt"
	"reflect"
	"time"

	"github.com/muzin/chameleon/internal/analyze"
	"github.com/muzin/chameleon/internal/plan"
)

// Adapt derives and caches the environments of (a, b) and (b, a), unless (a, b) is
// already cached. Pointers are ignored: *T and T share their environments.
func (c *Chameleon) Adapt(a, b reflect.Type) error {
	_, err := c.adapt(a, b, false)

	return err
}

// Readapt derives both directions again and replaces the cached environments, for
// instance after a type's shape changed.
func (c *Chameleon) Readapt(a, b reflect.Type) error {
	_, err := c.adapt(a, b, true)

	return err
}

// AdaptValues adapts the types of a and b.
func (c *Chameleon) AdaptValues(a, b any) error {
	return c.Adapt(reflect.TypeOf(a), reflect.TypeOf(b))
}

func (c *Chameleon) adapt(a, b reflect.Type, force bool) (*Environment, error) {
	if a == nil || b == nil {
		return nil, &DerivationError{Source: a, Dest: b, Err: fmt.Errorf("%w: nil type", ErrUnsupportedType)}
	}

	a, b = analyze.Base(a), analyze.Base(b)

	if !force {
		if env, ok := c.lookup(a, b); ok {
			c.metrics.recordHit()

			return env, nil
		}
	}

	unlock := c.lockPair(a, b)
	defer unlock()

	if !force {
		// Another caller may have derived the pair while we waited.
		if env, ok := c.lookup(a, b); ok {
			c.metrics.recordHit()

			return env, nil
		}
	}

	there, back, err := c.train(a, b)
	if err != nil {
		return nil, err
	}

	c.store(there, back)

	return there, nil
}

// lockPair takes the training locks of both source types in a fixed order, so that
// adapt(a, b) and adapt(b, a) never derive the same pair twice.
func (c *Chameleon) lockPair(a, b reflect.Type) (unlock func()) {
	first, second := c.bucket(a), c.bucket(b)
	if first == second {
		first.train.Lock()

		return first.train.Unlock
	}

	if typeAddr(a) > typeAddr(b) {
		first, second = second, first
	}

	first.train.Lock()
	second.train.Lock()

	return func() {
		second.train.Unlock()
		first.train.Unlock()
	}
}

func typeAddr(t reflect.Type) uintptr {
	return reflect.ValueOf(t).Pointer()
}

// train derives both directions of (a, b). A same-type pair derives one procedure.
func (c *Chameleon) train(a, b reflect.Type) (there, back *Environment, err error) {
	start := time.Now()
	pairName := plan.PairName(a, b)

	defer func() {
		c.metrics.recordDerivation(pairName, time.Since(start), err)
	}()

	there, err = c.derive(a, b)
	if err != nil {
		return nil, nil, err
	}

	back = there
	if a != b {
		if back, err = c.derive(b, a); err != nil {
			return nil, nil, err
		}
	}

	c.derivations.Add(1)
	c.log.Debug("adapted type pair",
		"pair", pairName,
		"strategy", there.procedure.Strategy,
		"steps", len(there.procedure.Steps),
		"reverse_steps", len(back.procedure.Steps),
		"took", time.Since(start),
	)

	return there, back, nil
}

func (c *Chameleon) derive(src, dst reflect.Type) (*Environment, error) {
	p, err := plan.Build(src, dst)
	if err != nil {
		c.log.Error("derivation failed", "pair", plan.PairName(src, dst), "error", err)

		return nil, &DerivationError{Source: src, Dest: dst, Err: err}
	}

	root := analyze.RootPath(src)
	for _, d := range p.Diagnostics.All() {
		c.log.Debug("field skipped",
			"path", root.Field(d.FieldPath).String(),
			"severity", d.Severity,
			"code", d.Code,
			"reason", d.Message,
		)
	}

	return &Environment{source: src, dest: dst, procedure: p, registry: c}, nil
}

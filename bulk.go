package chameleon

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/muzin/chameleon/pair"
)

// AddSelector registers a selector whose pairs Ready adapts.
func (c *Chameleon) AddSelector(s pair.Selector) {
	if s == nil {
		return
	}

	c.selectorsMu.Lock()
	defer c.selectorsMu.Unlock()

	c.selectors = append(c.selectors, s)
}

// Ready collects the pairs of every registered selector and adapts them all. It
// returns once every derivation has finished.
func (c *Chameleon) Ready(ctx context.Context) error {
	c.selectorsMu.Lock()
	selectors := append([]pair.Selector(nil), c.selectors...)
	c.selectorsMu.Unlock()

	var pairs []pair.Pair

	for _, s := range selectors {
		selected, err := s.Select(ctx)
		if err != nil {
			return fmt.Errorf("failed to select type pairs: %w", err)
		}

		pairs = append(pairs, selected...)
	}

	return c.AdaptAll(ctx, pairs)
}

// AdaptAll adapts every (main, related) combination of pairs, deriving independent
// pairs concurrently on up to the configured number of workers. The first failure
// cancels the pairs not started yet and is returned after the running ones finish.
func (c *Chameleon) AdaptAll(ctx context.Context, pairs []pair.Pair) error {
	var d pair.Dealer
	d.Expand(pairs...)

	total := d.Len()
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for {
		src, dst, ok := d.NextNeeds()
		if !ok || gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			return c.Adapt(src, dst)
		})
	}

	if err := g.Wait(); err != nil {
		c.log.Error("bulk registration failed", "pairs", total, "error", err)

		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	c.log.Info("bulk registration finished", "pairs", total, "took", time.Since(start))

	return nil
}

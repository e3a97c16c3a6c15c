package main

import (
	"context"

	"github.com/muzin/chameleon"
)

type registryKey struct{}

func withRegistry(ctx context.Context, c *chameleon.Chameleon) context.Context {
	return context.WithValue(ctx, registryKey{}, c)
}

// registryFrom returns the registry set up by the root command, or the default one.
func registryFrom(ctx context.Context) *chameleon.Chameleon {
	if c, ok := ctx.Value(registryKey{}).(*chameleon.Chameleon); ok {
		return c
	}

	return chameleon.Default()
}

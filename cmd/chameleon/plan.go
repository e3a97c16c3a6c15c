package main

import (
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/muzin/chameleon"
	"github.com/muzin/chameleon/examples/person"
	"github.com/muzin/chameleon/pair"
)

func newPlanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the procedures derived for the demo types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := registryFrom(cmd.Context())

			pairs := person.Pairs()
			c.AddSelector(pair.Static(pairs...))

			if err := c.Ready(cmd.Context()); err != nil {
				return err
			}

			return printPlans(cmd.OutOrStdout(), c, pairs)
		},
	}
}

// printPlans writes both directions of every pair, skipping the ones not derived.
func printPlans(w io.Writer, c *chameleon.Chameleon, pairs []pair.Pair) error {
	for _, p := range pairs {
		for _, related := range p.Related() {
			for _, dir := range [][2]reflect.Type{{p.Main(), related}, {related, p.Main()}} {
				env, ok := c.Environment(dir[0], dir[1])
				if !ok {
					continue
				}

				if _, err := fmt.Fprintln(w, env.String()); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Package main provides the CLI entrypoint for chameleon.
//
// chameleon derives conversion procedures between Go types at run time:
//   - plan prints what it derived for the bundled demo types
//   - convert decodes a YAML document into the demo entity and renders its view
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

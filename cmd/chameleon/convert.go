package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muzin/chameleon"
	"github.com/muzin/chameleon/examples/person"
	"github.com/muzin/chameleon/logger"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newConvertCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Decode a YAML person document and render it as a view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				return errors.New("--file is required")
			}

			doc, err := loadDocument(file)
			if err != nil {
				return err
			}

			c := registryFrom(cmd.Context())
			logger.FromContext(cmd.Context()).Debug("converting document", "file", file, "keys", len(doc))

			p, err := chameleon.To[*person.Person](c, doc, chameleon.AdaptMismatch(true))
			if err != nil {
				return fmt.Errorf("failed to decode person: %w", err)
			}

			view, err := chameleon.To[*person.PersonView](c, p, chameleon.AdaptMismatch(true))
			if err != nil {
				return fmt.Errorf("failed to render person view: %w", err)
			}

			dumper.Fdump(cmd.OutOrStdout(), p, view)

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML document to convert")

	return cmd
}

func loadDocument(path string) (person.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc person.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return doc, nil
}

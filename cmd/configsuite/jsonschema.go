package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/equinor/configsuite/jsonschema"
)

func (a *app) jsonschemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jsonschema --schema SCHEMA",
		Short: "Export the schema as JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.loadSchema()
			if err != nil {
				return err
			}
			b, err := jsonschema.Marshal(jsonschema.FromNode(n))
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, string(b))
			return nil
		},
	}
}

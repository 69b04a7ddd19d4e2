package main

import (
	"fmt"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/equinor/configsuite"
	"github.com/equinor/configsuite/source/msgpack"
)

func (a *app) snapshotCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "snapshot --schema SCHEMA LAYER...",
		Short: "Print the merged configuration",
		Long:  `Merges and transforms the layers and prints the snapshot. Defaults are filled in. An invalid configuration is reported like validate does.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, docs, err := a.loadSuite(args)
			if err != nil {
				return err
			}
			if !s.Valid() {
				printErrors(a.errOut, s, docs)
				return errInvalid
			}
			native := configsuite.ToNative(s.Snapshot())
			switch format {
			case "json":
				b, err := j.MarshalIndent(native, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, string(b))
			case "yaml":
				b, err := yamlv3.Marshal(native)
				if err != nil {
					return err
				}
				fmt.Fprint(a.out, string(b))
			case "msgpack":
				return msgpack.Write(a.out, native)
			default:
				return fmt.Errorf("unknown format %q (want json, yaml or msgpack)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: json, yaml or msgpack")
	return cmd
}

package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/equinor/configsuite/i18n"
	"github.com/equinor/configsuite/internal/logging"
)

// errInvalid is returned once the errors of an invalid configuration have
// been printed.
var errInvalid = errors.New("configuration is invalid")

type app struct {
	out    io.Writer
	errOut io.Writer

	logLevel       string
	lang           string
	deduceRequired bool
	schemaPath     string

	logger *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:           "configsuite",
		Short:         "Validate layered configuration files against a schema",
		Long:          `configsuite merges configuration layers, lowest precedence first, and checks the result against a schema document.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			i18n.SetLanguage(a.lang)
			a.logger = logging.NewWriter(a.errOut, logging.ParseLevel(a.logLevel))
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	// Persistent flags (available to all commands)
	pf := root.PersistentFlags()
	pf.StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	pf.StringVar(&a.lang, "lang", "en", "Language of error labels: en or ja")
	pf.BoolVar(&a.deduceRequired, "deduce-required", false, "Derive required fields from allow_none and default only")
	pf.StringVar(&a.schemaPath, "schema", "", "Schema document (.yaml, .yml, .json or .toml)")

	root.AddCommand(a.validateCmd(), a.snapshotCmd(), a.jsonschemaCmd())
	return root
}

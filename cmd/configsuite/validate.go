package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/equinor/configsuite"
	"github.com/equinor/configsuite/i18n"
	"github.com/equinor/configsuite/source"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	pathLabel  = color.New(color.FgCyan).SprintFunc()
	posLabel   = color.New(color.FgYellow).SprintFunc()
	okLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
)

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate --schema SCHEMA LAYER...",
		Short: "Check configuration layers against a schema",
		Long:  `Merges the layers, lowest precedence first, and reports every error with the file position it comes from when the format records positions.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, docs, err := a.loadSuite(args)
			if err != nil {
				return err
			}
			top := args[len(args)-1]
			if s.Valid() {
				fmt.Fprintln(a.out, okLabel(i18n.T("valid", map[string]string{"file": top})))
				return nil
			}
			printErrors(a.out, s, docs)
			fmt.Fprintln(a.out, errorLabel(i18n.T("invalid", map[string]string{
				"file":  top,
				"count": strconv.Itoa(len(s.Errors())),
			})))
			return errInvalid
		},
	}
}

func printErrors(w io.Writer, s *configsuite.Suite, docs []source.Document) {
	if !s.Readable() {
		fmt.Fprintln(w, errorLabel(i18n.T("not_readable", nil)))
	}
	for _, e := range s.Errors() {
		line := fmt.Sprintf("  %s %s: %s", errorLabel(i18n.T(e.Code(), nil)), pathLabel(e.KeyPath.Pointer()), e.Message)
		if pos, ok := locate(docs, e); ok {
			line += " " + posLabel("("+pos.String()+")")
		}
		if e.Layer != configsuite.NoLayer {
			line += " [" + i18n.T("in_layer", map[string]string{"layer": strconv.Itoa(e.Layer)}) + "]"
		}
		fmt.Fprintln(w, line)
	}
}

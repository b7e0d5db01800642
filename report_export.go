package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/json-translations-manager/jtm/internal/translations"
)

func newExportCmd() *cobra.Command {
	var locale, format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print a locale as nested YAML or flat key=value lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if locale == "" {
				return fmt.Errorf("--locale is required")
			}
			if err := checkFormat(format, "yaml", "flat"); err != nil {
				return err
			}
			m, err := openConfigured()
			if err != nil {
				return err
			}
			return m.View(func(s *translations.Store) error {
				return exportLocale(cmd.OutOrStdout(), s, locale, format)
			})
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "Locale to export (required)")
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml, flat")
	return cmd
}

func exportLocale(w io.Writer, s *translations.Store, locale, format string) error {
	doc, err := s.Document(locale)
	if err != nil {
		return err
	}
	if format == "flat" {
		return translations.WriteFlat(w, doc)
	}
	data, err := translations.MarshalYAML(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

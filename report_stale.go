package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/json-translations-manager/jtm/internal/translations"
)

func newStaleCmd() *cobra.Command {
	var locale, reference, format string
	cmd := &cobra.Command{
		Use:   "stale",
		Short: "List keys a locale defines but the reference locale does not",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if locale == "" || reference == "" {
				return fmt.Errorf("--locale and --reference are required")
			}
			if err := checkFormat(format, "text", "json"); err != nil {
				return err
			}
			m, err := openConfigured()
			if err != nil {
				return err
			}
			return m.View(func(s *translations.Store) error {
				return reportStale(cmd.OutOrStdout(), s, locale, reference, format)
			})
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "Target locale (required)")
	cmd.Flags().StringVar(&reference, "reference", "", "Reference locale (required)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json")
	return cmd
}

func reportStale(w io.Writer, s *translations.Store, locale, reference, format string) error {
	stale, err := staleKeys(s, locale, reference)
	if err != nil {
		return err
	}
	return outputStrings(w, stale, format, "stale keys in "+locale)
}

// staleKeys returns the sorted leaves of locale that reference lacks.
func staleKeys(s *translations.Store, locale, reference string) ([]string, error) {
	target, err := s.Document(locale)
	if err != nil {
		return nil, err
	}
	ref, err := s.Document(reference)
	if err != nil {
		return nil, err
	}
	refKeys := translations.Flatten(ref)
	targetKeys := translations.Flatten(target)

	var stale []string
	for _, k := range translations.SortedKeys(targetKeys) {
		if _, found := refKeys[k]; !found {
			stale = append(stale, k)
		}
	}
	return stale, nil
}

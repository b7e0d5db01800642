package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/json-translations-manager/jtm/internal/translations"
)

func newMissingCmd() *cobra.Command {
	var locale, reference, format string
	cmd := &cobra.Command{
		Use:   "missing",
		Short: "List keys some locale does not define",
		Long: `List keys some locale does not define.

With --locale, only keys missing from that locale are listed. With
--reference, each missing key is printed as key=value using the reference
locale's text, ready to be translated and fed back through "jtm import".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "text", "json"); err != nil {
				return err
			}
			m, err := openConfigured()
			if err != nil {
				return err
			}
			return m.View(func(s *translations.Store) error {
				return reportMissing(cmd.OutOrStdout(), s, locale, reference, format)
			})
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "Target locale (default: all locales)")
	cmd.Flags().StringVar(&reference, "reference", "", "Print key=value pairs from this locale")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json")
	return cmd
}

func reportMissing(w io.Writer, s *translations.Store, locale, reference, format string) error {
	if locale != "" {
		if _, err := s.Document(locale); err != nil {
			return err
		}
	}
	if reference != "" {
		if _, err := s.Document(reference); err != nil {
			return err
		}
	}

	var missing []string
	for _, e := range s.Index() {
		if !missingFrom(e, locale) {
			continue
		}
		if reference == "" {
			missing = append(missing, e.Key)
			continue
		}
		value, ok, err := s.GetValue(reference, e.Key)
		if err != nil {
			return err
		}
		if ok {
			missing = append(missing, e.Key+"="+value)
		}
	}

	label := "missing keys"
	if locale != "" {
		label += " in " + locale
	}
	if reference != "" && format == "text" {
		for _, line := range missing {
			fmt.Fprintln(w, line)
		}
		return nil
	}
	return outputStrings(w, missing, format, label)
}

// missingFrom reports whether locale lacks the entry, or any locale does
// when locale is empty.
func missingFrom(e translations.IndexEntry, locale string) bool {
	if locale == "" {
		return !e.Complete()
	}
	for _, l := range e.Missing {
		if l == locale {
			return true
		}
	}
	return false
}

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/json-translations-manager/jtm/internal/translations"
)

func newCheckCmd() *cobra.Command {
	var src sourceFlags
	var noScan bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that every locale defines every key and that every key is used",
		Long: `Check that every locale defines every key and that every key is used.

Each locale is reported with the number of keys it is missing. Unless
--no-scan is given, the source tree is scanned for keys that are never
referenced. The command fails when any count is non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openConfigured()
			if err != nil {
				return err
			}
			return m.View(func(s *translations.Store) error {
				var refs map[string][]keyReference
				if !noScan {
					var err error
					if _, refs, err = src.scan(m.Root(), s); err != nil {
						return err
					}
				}
				return runCheck(cmd.OutOrStdout(), s, refs)
			})
		},
	}
	src.register(cmd)
	cmd.Flags().BoolVar(&noScan, "no-scan", false, "Skip the unused key scan")
	return cmd
}

// runCheck prints one line per check. refs is nil when the source scan
// was skipped.
func runCheck(w io.Writer, s *translations.Store, refs map[string][]keyReference) error {
	entries := s.Index()

	missing := make(map[string]int)
	for _, e := range entries {
		for _, l := range e.Missing {
			missing[l]++
		}
	}

	passed := true
	printResult := func(label string, count int) {
		status := "OK"
		if count > 0 {
			status = "FAIL"
			passed = false
		}
		fmt.Fprintf(w, "  %-40s %4d  %s\n", label+":", count, status)
	}

	for _, locale := range s.Locales() {
		printResult("keys missing from "+localeLabel(locale), missing[locale])
	}
	if refs != nil {
		printResult("unused keys", len(unusedKeys(entries, refs)))
	}
	for _, err := range s.Skipped() {
		fmt.Fprintf(w, "  skipped: %v\n", err)
		passed = false
	}

	if passed {
		fmt.Fprintf(w, "All checks passed (%d keys, %d locales).\n", len(entries), len(s.Locales()))
		return nil
	}
	return fmt.Errorf("checks failed")
}

// localeLabel appends the English language name to locales that parse as
// BCP 47 tags, so "pt-BR" reads "pt-BR (Brazilian Portuguese)".
func localeLabel(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	name := display.Tags(language.English).Name(tag)
	if name == "" {
		return locale
	}
	return fmt.Sprintf("%s (%s)", locale, name)
}

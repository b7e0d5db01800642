package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/json-translations-manager/jtm/internal/translations"
)

func newUnusedCmd() *cobra.Command {
	var src sourceFlags
	var format string
	cmd := &cobra.Command{
		Use:   "unused",
		Short: "List translation keys never referenced in the source tree",
		Long: `List translation keys never referenced in the source tree.

The list can be piped into "jtm delete" to remove the keys.`,
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
				entries, refs, err := src.scan(m.Root(), s)
				if err != nil {
					return err
				}
				return reportUnused(cmd.OutOrStdout(), entries, refs, format)
			})
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json")
	return cmd
}

func reportUnused(w io.Writer, entries []translations.IndexEntry, refs map[string][]keyReference, format string) error {
	return outputStrings(w, unusedKeys(entries, refs), format, "unused keys")
}

func unusedKeys(entries []translations.IndexEntry, refs map[string][]keyReference) []string {
	var unused []string
	for _, e := range entries {
		if _, found := refs[e.Key]; !found {
			unused = append(unused, e.Key)
		}
	}
	return unused
}

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/json-translations-manager/jtm/internal/translations"
)

// sourceFlags are shared by the commands that scan source code.
type sourceFlags struct {
	dir  string
	exts []string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "src", "", "Directory to scan (default: project root)")
	cmd.Flags().StringSliceVar(&f.exts, "ext", defaultSourceExts, "Source file extensions to scan")
}

// scan indexes the store and finds references below the source directory.
func (f *sourceFlags) scan(root string, s *translations.Store) ([]translations.IndexEntry, map[string][]keyReference, error) {
	entries := s.Index()
	keys := make(map[string]bool, len(entries))
	for _, e := range entries {
		keys[e.Key] = true
	}
	dir := f.dir
	if dir == "" {
		dir = root
	}
	refs, err := findKeyReferences(dir, f.exts, keys)
	if err != nil {
		return nil, nil, err
	}
	return entries, refs, nil
}

func newReferencesCmd() *cobra.Command {
	var src sourceFlags
	var format string
	cmd := &cobra.Command{
		Use:     "usages",
		Aliases: []string{"references"},
		Short:   "Show where each translation key is used in the source tree",
		Args:    cobra.NoArgs,
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
				return reportReferences(cmd.OutOrStdout(), entries, refs, format)
			})
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json")
	return cmd
}

func reportReferences(w io.Writer, entries []translations.IndexEntry, refs map[string][]keyReference, format string) error {
	if format == "json" {
		known := make(map[string][]keyReference)
		for _, e := range entries {
			if locations := refs[e.Key]; len(locations) > 0 {
				known[e.Key] = locations
			}
		}
		return outputJSON(w, known)
	}

	for _, e := range entries {
		locations := refs[e.Key]
		if len(locations) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", e.Key)
		for _, loc := range locations {
			fmt.Fprintf(w, "  %s:%d\n", loc.File, loc.Line)
		}
	}
	return nil
}

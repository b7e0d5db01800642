package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/json-translations-manager/jtm/internal/translations"
)

func newImportCmd() *cobra.Command {
	var locale, format string
	cmd := &cobra.Command{
		Use:   "import [FILE...]",
		Short: "Merge translations from YAML, JSON or key=value files into a locale",
		Long: `Merge translations from YAML, JSON or key=value files into a locale.

Input is read from the given files, or from stdin when none are given.
Markdown is accepted too: only the contents of yaml code fences are used.
With --format auto, nested JSON and YAML mappings are tried before flat
"key=value" or "key: value" lines. Imported values override existing ones.`,
		Example: `  jtm missing --locale fr --reference en > todo.txt
  jtm import --locale fr todo.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if locale == "" {
				return fmt.Errorf("--locale is required")
			}
			if err := checkFormat(format, "auto", "json", "yaml", "flat"); err != nil {
				return err
			}
			data, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			entries, err := parseImport(data, format)
			if err != nil {
				return err
			}
			m, err := openConfigured()
			if err != nil {
				return err
			}
			return m.Import(locale, entries)
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "Target locale (required)")
	cmd.Flags().StringVar(&format, "format", "auto", "Input format: auto, json, yaml, flat")
	return cmd
}

// readInput concatenates the translation text of files, or reads r when
// there are none.
func readInput(r io.Reader, files []string) ([]byte, error) {
	if len(files) == 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []byte(extractTranslationText(data)), nil
	}
	var combined strings.Builder
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		combined.WriteString(extractTranslationText(data))
	}
	return []byte(combined.String()), nil
}

// parseImport decodes data in the given format. Auto detection picks JSON
// for input starting with '{', then YAML when it holds a mapping, then
// flat lines.
func parseImport(data []byte, format string) ([]translations.Entry, error) {
	switch format {
	case "json":
		return translations.ParseJSONEntries(data)
	case "yaml":
		return translations.ParseYAMLEntries(data)
	case "flat":
		return translations.ParseFlatEntries(bytes.NewReader(data))
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if entries, err := translations.ParseJSONEntries(data); err == nil {
			return entries, nil
		}
	}
	if entries, err := translations.ParseYAMLEntries(data); err == nil && len(entries) > 0 {
		return entries, nil
	}
	return translations.ParseFlatEntries(bytes.NewReader(data))
}

// extractTranslationText returns the contents of ```yaml fences when data
// holds any, and data unchanged otherwise.
func extractTranslationText(data []byte) string {
	content := string(data)
	if !strings.Contains(content, "```yaml") {
		return content
	}

	var extracted strings.Builder
	inFence := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "```yaml" {
			inFence = true
			continue
		}
		if trimmed == "```" && inFence {
			inFence = false
			continue
		}
		if inFence {
			extracted.WriteString(line)
			extracted.WriteString("\n")
		}
	}
	if extracted.Len() == 0 {
		return content
	}
	return extracted.String()
}

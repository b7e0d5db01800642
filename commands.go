package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/json-translations-manager/jtm/internal/app"
	"github.com/json-translations-manager/jtm/internal/translations"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Choose the translation folder and the sort preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openManager()
			if err != nil {
				return err
			}
			return m.Configure()
		},
	}
}

func newTranslateCmd() *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "translate [KEY]",
		Short: "Add or edit a key in every locale",
		Long: `Add or edit a key in every locale.

With --set the given values are stored directly. Without it, the current
value of every locale is shown and a new one can be typed; a blank answer
keeps the current value. The key is asked for when omitted.`,
		Example: `  jtm translate home.title --set en=Home --set fr=Accueil
  jtm translate home.title`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) > 0 {
				key = args[0]
			}
			m, err := openConfigured()
			if err != nil {
				return err
			}
			return translateKey(m, key, sets)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Locale value as LOCALE=VALUE (repeatable)")
	return cmd
}

// translateKey stores --set values, or edits the key interactively.
func translateKey(m *app.Manager, key string, sets []string) error {
	if len(sets) == 0 {
		return m.Edit(key)
	}
	if key == "" {
		return fmt.Errorf("a key is required with --set")
	}
	values, err := parseSets(sets)
	if err != nil {
		return err
	}
	return m.Translate(key, values)
}

// parseSets turns LOCALE=VALUE pairs into a map.
func parseSets(sets []string) (map[string]string, error) {
	values := make(map[string]string, len(sets))
	for _, s := range sets {
		locale, value, ok := strings.Cut(s, "=")
		if !ok || locale == "" {
			return nil, fmt.Errorf("invalid --set %q: want LOCALE=VALUE", s)
		}
		values[locale] = value
	}
	return values, nil
}

func newTranslateSelectedCmd() *cobra.Command {
	var selection string
	cmd := &cobra.Command{
		Use:   "translate-selected",
		Short: "Edit the key given by an editor selection",
		Long: `Edit the key given by an editor selection.

The selection is read from --selection, or from stdin so that an editor
can pipe the selected text. Surrounding quotes are removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if selection == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				selection = string(data)
			}
			key := selectedKey(selection)
			if key == "" {
				return fmt.Errorf("no key selected")
			}
			m, err := openConfigured()
			if err != nil {
				return err
			}
			return m.Edit(key)
		},
	}
	cmd.Flags().StringVar(&selection, "selection", "", "Selected text")
	return cmd
}

// selectedKey trims whitespace and one pair of matching quotes.
func selectedKey(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"' || first == '`') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Add a new key, prompting for it and its translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openConfigured()
			if err != nil {
				return err
			}
			return m.Add()
		},
	}
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit OLD_KEY [NEW_KEY]",
		Short: "Rename a key in every locale that defines it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var newKey string
			if len(args) > 1 {
				newKey = args[1]
			}
			m, err := openConfigured()
			if err != nil {
				return err
			}
			return m.Rename(args[0], newKey)
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [KEY...]",
		Short: "Remove keys from every locale",
		Long: `Remove keys from every locale, pruning objects left empty.

With no arguments, keys are read from stdin one per line, so the output of
"jtm missing" or "jtm unused" can be piped in. Lines that are not keys are
skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := args
			if len(keys) == 0 {
				var err error
				keys, err = readKeys(cmd.InOrStdin())
				if err != nil {
					return err
				}
				if len(keys) == 0 {
					return fmt.Errorf("no valid keys provided on stdin")
				}
			}
			m, err := openConfigured()
			if err != nil {
				return err
			}
			for _, key := range keys {
				if err := m.Delete(key); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// readKeys reads translation keys from r, one per line. Blank lines and
// lines that do not parse as a single key, such as report headers, are
// skipped.
func readKeys(r io.Reader) ([]string, error) {
	var keys []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key := strings.TrimSpace(scanner.Text())
		if key == "" || strings.ContainsAny(key, " \t:") {
			continue
		}
		if _, err := translations.ParseKey(key); err != nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys, scanner.Err()
}

func newGetCmd() *cobra.Command {
	var locale, format string
	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Show the translations of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "text", "json"); err != nil {
				return err
			}
			m, err := openConfigured()
			if err != nil {
				return err
			}
			panel, err := m.Panel(args[0])
			if err != nil {
				return err
			}
			if locale != "" {
				var filtered []app.LocaleValue
				for _, lv := range panel {
					if lv.Locale == locale {
						filtered = append(filtered, lv)
					}
				}
				if filtered == nil {
					return fmt.Errorf("%w: %s", translations.ErrUnknownLocale, locale)
				}
				panel = filtered
			}
			return writePanel(cmd.OutOrStdout(), panel, format)
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "Only show this locale")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json")
	return cmd
}

func writePanel(w io.Writer, panel []app.LocaleValue, format string) error {
	if format == "json" {
		return outputJSON(w, panel)
	}
	width := 0
	for _, lv := range panel {
		width = max(width, len(lv.Locale))
	}
	for _, lv := range panel {
		if lv.Defined {
			fmt.Fprintf(w, "%-*s  %s\n", width, lv.Locale, lv.Value)
		} else {
			fmt.Fprintf(w, "%-*s  (missing)\n", width, lv.Locale)
		}
	}
	return nil
}

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload the configuration and locale files and summarize them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openConfigured()
			if err != nil {
				return err
			}
			if err := m.Refresh(); err != nil {
				return err
			}
			return m.View(func(s *translations.Store) error {
				entries := s.Index()
				fmt.Fprintf(os.Stderr, "Loaded %d locales with %d keys from %s\n", len(s.Locales()), len(entries), s.Folder())
				return nil
			})
		},
	}
}

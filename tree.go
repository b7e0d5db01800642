package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/json-translations-manager/jtm/internal/translations"
	"github.com/json-translations-manager/jtm/internal/watch"
)

// treeFlags are shared by tree and watch.
type treeFlags struct {
	format string
	prefix string
	locale string
}

func (f *treeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "text", "Output format: text, json")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Only show keys at or below this dotted prefix")
	cmd.Flags().StringVar(&f.locale, "locale", "", "Show the values of this locale next to each key")
}

func (f *treeFlags) check() error {
	return checkFormat(f.format, "text", "json")
}

// print renders the tree of the store's current index.
func (f *treeFlags) print(w io.Writer, s *translations.Store) error {
	var values map[string]string
	if f.locale != "" {
		doc, err := s.Document(f.locale)
		if err != nil {
			return err
		}
		values = translations.Flatten(doc)
	}
	nodes := translations.BuildTree(translations.FilterPrefix(s.Index(), f.prefix))
	if f.format == "json" {
		if nodes == nil {
			nodes = []*translations.TreeNode{}
		}
		return outputJSON(w, nodes)
	}
	if len(nodes) == 0 {
		fmt.Fprintln(w, "No translation keys found.")
		return nil
	}
	writeTree(w, nodes, 0, values)
	return nil
}

// writeTree prints nodes indented by depth. Leaves missing from some
// locale list those locales.
func writeTree(w io.Writer, nodes []*translations.TreeNode, depth int, values map[string]string) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		line := indent + n.Name
		if n.IsLeaf() {
			if v, ok := values[n.Key]; ok {
				line += " = " + v
			}
			if !n.Entry.Complete() {
				line += "  [missing: " + strings.Join(n.Entry.Missing, ", ") + "]"
			}
		}
		fmt.Fprintln(w, line)
		writeTree(w, n.Children, depth+1, values)
	}
}

func newTreeCmd() *cobra.Command {
	var flags treeFlags
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show every translation key as a tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.check(); err != nil {
				return err
			}
			m, err := openConfigured()
			if err != nil {
				return err
			}
			return m.View(func(s *translations.Store) error {
				return flags.print(cmd.OutOrStdout(), s)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newWatchCmd() *cobra.Command {
	var flags treeFlags
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload and reprint the tree whenever translation files change",
		Long: `Reload and reprint the tree whenever translation files change.

The translation folder and the settings file are watched. Press Ctrl-C to
stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.check(); err != nil {
				return err
			}
			m, err := openConfigured()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			reprint := func() {
				if err := m.View(func(s *translations.Store) error {
					return flags.print(out, s)
				}); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				}
			}
			cancel := m.OnRefresh(reprint)
			defer cancel()
			reprint()

			w, err := watch.New(m.Config().Folder(m.Root()), m.Root())
			if err != nil {
				return fmt.Errorf("watching %s: %w", m.Root(), err)
			}
			defer w.Close()
			w.OnError = func(err error) {
				fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(os.Stderr, "Watching %s for changes...\n", m.Config().Folder(m.Root()))
			err = w.Run(ctx, func(changed []string) {
				fmt.Fprintf(os.Stderr, "Changed: %s\n", strings.Join(changed, ", "))
				if err := m.Refresh(); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				}
			})
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

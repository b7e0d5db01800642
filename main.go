// jtm manages JSON translation files: one nested JSON document per locale,
// kept in sync when keys are added, renamed or removed.
//
// Usage:
//
//	jtm <command> [flags] [args]
//
// Run "jtm --help" for a list of commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/json-translations-manager/jtm/internal/host"
)

// Global flags.
var (
	rootDir string
	desktop bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jtm",
		Short: "Create, browse, edit and delete entries in JSON translation files",
		Long: `jtm manages the JSON locale files of a project.

The translation folder and the sort preference are stored in
json-translations-manager-settings.json at the project root; run
"jtm config" to create it. Every "*.json" file directly inside the
translation folder is a locale ("fr.json" is locale "fr"). Keys use dot
notation for nested objects: "home.title" is {"home": {"title": ...}}.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&rootDir, "root", "", "Project root (default: nearest directory with a settings file)")
	root.PersistentFlags().BoolVar(&desktop, "desktop", false, "Use desktop dialogs and notifications")

	root.AddCommand(
		newConfigCmd(),
		newTranslateCmd(),
		newTranslateSelectedCmd(),
		newAddCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newGetCmd(),
		newTreeCmd(),
		newRefreshCmd(),
		newWatchCmd(),
		newMissingCmd(),
		newStaleCmd(),
		newCheckCmd(),
		newReferencesCmd(),
		newUnusedCmd(),
		newExportCmd(),
		newImportCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, host.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "Cancelled.")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

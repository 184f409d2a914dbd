package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/shapegen/cmd/shapegen/commands"
	"github.com/teranos/shapegen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "shapegen",
	Short: "shapegen - Rust source generation from shape models",
	Long: `shapegen - Rust source generation from shape models.

Reads a shape model (JSON/YAML AST form), computes the top-level shape
closure, and renders Rust type declarations and schema blocks against the
smithy4rs_core runtime.

Examples:
  shapegen generate -m model.json -o generated   # One generation pass
  shapegen watch -m model.json -o generated      # Regenerate on change
  shapegen version                               # Show build information`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "JSON structured log output")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/sapling"
	"github.com/aretw0/sapling/internal/logging"
	"github.com/aretw0/sapling/pkg/adapters/yamlfile"
	"github.com/aretw0/sapling/pkg/schema"
)

var rootCmd = &cobra.Command{
	Use:   "sapling",
	Short: "Sapling materializes immutable state trees from declarative schemas",
	Long: `Sapling compiles a YAML schema into a type graph, composes a state tree
over an optional value document, and applies named transitions that always
produce a new tree.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("schema", "", "Path to the YAML schema document")
	rootCmd.PersistentFlags().String("value", "", "Path to the YAML value document (optional)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// composeFromFlags builds a tree from the --schema/--value flags.
func composeFromFlags(cmd *cobra.Command) (*sapling.Root, *schema.Descriptor, error) {
	schemaPath, _ := cmd.Flags().GetString("schema")
	if schemaPath == "" {
		return nil, nil, fmt.Errorf("--schema is required")
	}
	def, err := yamlfile.LoadDefinition(schemaPath)
	if err != nil {
		return nil, nil, err
	}
	desc, err := schema.Compile(def)
	if err != nil {
		return nil, nil, err
	}

	var value any
	if valuePath, _ := cmd.Flags().GetString("value"); valuePath != "" {
		value, err = yamlfile.LoadValue(valuePath)
		if err != nil {
			return nil, nil, err
		}
	}

	logger := logging.NewNop()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger = logging.New(slog.LevelDebug)
	}

	return sapling.Compose(desc, value, sapling.WithLogger(logger)), desc, nil
}

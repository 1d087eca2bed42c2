package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump the materialized state view at a path",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _, err := composeFromFlags(cmd)
		if err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("path")
		node, err := root.At(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "type: %s (%s)\n", node.Type().Name(), node.Type().Kind())
		fmt.Fprintf(cmd.OutOrStdout(), "transitions: %v\n", node.Transitions())
		fmt.Fprint(cmd.OutOrStdout(), spew.Sdump(node.State().Export()))
		return nil
	},
}

func init() {
	inspectCmd.Flags().String("path", "", "Dotted field path to inspect (default: root)")
	rootCmd.AddCommand(inspectCmd)
}

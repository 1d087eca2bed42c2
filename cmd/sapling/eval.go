package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/sapling/pkg/domain"
)

var evalCmd = &cobra.Command{
	Use:   "eval [op...]",
	Short: "Apply transitions to a tree and print the resulting raw value",
	Long: `Each op has the form PATH:NAME[:ARG...], where PATH is a dotted field
path (empty for the root), NAME is a transition and every ARG is parsed as
a YAML scalar. Ops apply in order, each to the tree the previous one
produced.

Example:

  sapling eval --schema robot.yaml speed:sum:10 speed:sum:20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _, err := composeFromFlags(cmd)
		if err != nil {
			return err
		}

		for _, op := range args {
			path, name, opArgs, err := parseOp(op)
			if err != nil {
				return err
			}
			node, err := root.At(path)
			if err != nil {
				return err
			}
			root, err = node.Call(name, opArgs...)
			if err != nil {
				return err
			}
		}

		value := root.ValueOf()
		if value == domain.NoData {
			fmt.Fprintln(cmd.OutOrStdout(), "# no data")
			return nil
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

// parseOp splits "a.b:sum:10" into path, transition name and YAML-typed args.
func parseOp(op string) (string, string, []any, error) {
	parts := strings.Split(op, ":")
	if len(parts) < 2 {
		return "", "", nil, fmt.Errorf("invalid op %q: want PATH:NAME[:ARG...]", op)
	}
	path, name := parts[0], parts[1]
	args := make([]any, 0, len(parts)-2)
	for _, raw := range parts[2:] {
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return "", "", nil, fmt.Errorf("invalid arg %q in op %q: %w", raw, op, err)
		}
		args = append(args, v)
	}
	return path, name, args, nil
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

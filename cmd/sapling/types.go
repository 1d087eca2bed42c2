package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/sapling/pkg/schema"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the compiled type graph of a schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, desc, err := composeFromFlags(cmd)
		if err != nil {
			return err
		}
		printed := make(map[*schema.Descriptor]bool)
		printDescriptor(cmd, desc, printed)
		return nil
	},
}

func printDescriptor(cmd *cobra.Command, d *schema.Descriptor, printed map[*schema.Descriptor]bool) {
	if printed[d] {
		return
	}
	printed[d] = true

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", d.Name(), d.Kind())
	if p := d.Parent(); p != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  parent: %s\n", p.Name())
	}
	var nested []*schema.Descriptor
	for _, name := range d.FieldNames() {
		f, _ := d.Field(name)
		if f.IsConst {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: const %v\n", name, f.Constant)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", name, f.Desc.Name())
		if !f.Desc.Kind().Primitive() {
			nested = append(nested, f.Desc)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  transitions: %s\n", strings.Join(d.TransitionNames(), ", "))
	for _, sub := range nested {
		printDescriptor(cmd, sub, printed)
	}
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/justindarc/ultraspin/theme"
)

func newThemeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "theme <system> <game>",
		Short: "Print a game's theme descriptor",
		Long:  "Print the components of a game's theme in document order. Games without a theme fall back to the default theme.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := ctx.media()
			if err != nil {
				return err
			}
			desc, err := theme.NewLoader(resolver, ctx.logger).Load(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("load theme: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Component", "Attribute", "Value"}, descriptorRows(desc), nil))
			return nil
		},
	}
}

// descriptorRows lists every attribute, components in document order and
// attributes by name.
func descriptorRows(desc *theme.Descriptor) [][]string {
	var rows [][]string
	for _, name := range desc.Order {
		attrs := desc.Components[name]
		keys := make([]string, 0, len(attrs))
		for k := range attrs {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		if len(keys) == 0 {
			rows = append(rows, []string{name, "", ""})
			continue
		}
		for i, k := range keys {
			label := ""
			if i == 0 {
				label = name
			}
			rows = append(rows, []string{label, k, attrs.String(k)})
		}
	}
	return rows
}

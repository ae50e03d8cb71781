package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEffectsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "effects",
		Short:       "List the supported transition types",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c := ctx.compiler()
			entries, exits := c.EntryEffects(), c.ExitEffects()
			rows := make([][]string, 0, max(len(entries), len(exits)))
			for i := 0; i < max(len(entries), len(exits)); i++ {
				row := []string{"", ""}
				if i < len(entries) {
					row[0] = entries[i]
				}
				if i < len(exits) {
					row[1] = exits[i]
				}
				rows = append(rows, row)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Entry (center/none)", "Exit"}, rows, nil))
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justindarc/ultraspin/settings"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "settings <system> [section] [key]",
		Short: "Read a system's settings file",
		Long: "With only a system, list the sections of Settings/<system>.ini. With a section,\n" +
			"list its keys and values. With a key, print the single value.",
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := ctx.media()
			if err != nil {
				return err
			}
			s, err := settings.LoadSystem(resolver, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch len(args) {
			case 1:
				rows := make([][]string, 0)
				for _, name := range s.Sections() {
					rows = append(rows, []string{name, fmt.Sprint(len(s.Keys(name)))})
				}
				fmt.Fprintln(out, renderTable([]string{"Section", "Keys"}, rows, []columnAlignment{alignLeft, alignRight}))
			case 2:
				rows := make([][]string, 0)
				for _, key := range s.Keys(args[1]) {
					v, _ := s.Get(args[1], key)
					rows = append(rows, []string{key, v})
				}
				if len(rows) == 0 {
					return fmt.Errorf("section %q not found in %s", args[1], s.Path())
				}
				fmt.Fprintln(out, renderTable([]string{"Key", "Value"}, rows, nil))
			default:
				v, ok := s.Get(args[1], args[2])
				if !ok {
					return fmt.Errorf("%s.%s not set in %s", args[1], args[2], s.Path())
				}
				fmt.Fprintln(out, v)
			}
			return nil
		},
	}
}

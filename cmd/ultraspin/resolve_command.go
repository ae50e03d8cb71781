package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/justindarc/ultraspin/media"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var ext string

	cmd := &cobra.Command{
		Use:   "resolve <kind> <system> <name>",
		Short: "Show where an asset is looked for and which file is used",
		Long:  "Kinds: theme, wheel, special, video, frontend.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := media.ParseKind(args[0])
			if err != nil {
				return err
			}
			resolver, err := ctx.media()
			if err != nil {
				return err
			}
			loc := media.Location{System: args[1], Game: args[2], Kind: kind, Extension: ext}
			resolved, found := resolver.Resolve(loc)

			rows := make([][]string, 0, 4)
			for i, candidate := range resolver.Candidates(loc) {
				rows = append(rows, []string{fmt.Sprint(i + 1), candidate, yesNo(found && resolved == absolute(resolver, candidate))})
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No candidates for kind %s\n", kind)
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Candidate", "Used"}, rows, []columnAlignment{alignRight}))
			if !found {
				fmt.Fprintln(out, "Not found")
				return nil
			}
			fmt.Fprintf(out, "Resolved: %s\n", resolved)
			return nil
		},
	}

	cmd.Flags().StringVar(&ext, "ext", "", "Restrict candidates to one extension")
	return cmd
}

// absolute turns a root-relative candidate into the path Resolve reports.
func absolute(r *media.Resolver, candidate string) string {
	return filepath.Join(r.Root(), filepath.FromSlash(candidate))
}

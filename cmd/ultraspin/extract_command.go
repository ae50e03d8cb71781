package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var hold bool

	cmd := &cobra.Command{
		Use:   "extract <system> <game> <prefix>",
		Short: "Extract a member of a game's theme archive",
		Long: "Extract the first member of Media/<system>/Themes/<game>.zip whose name starts with\n" +
			"<prefix>. The temporary copy is deleted when the command exits unless --out is given.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := ctx.media()
			if err != nil {
				return err
			}
			asset, err := resolver.Member(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Archive: %s\n", asset.Archive)
			fmt.Fprintf(out, "Member:  %s\n", asset.Member)

			if outPath != "" {
				if err := copyFile(asset.Path, outPath); err != nil {
					return err
				}
				fmt.Fprintf(out, "Written: %s\n", outPath)
				return nil
			}

			fmt.Fprintf(out, "Temp:    %s\n", asset.Path)
			if hold {
				fmt.Fprintln(out, "Holding until the grace window ends...")
				select {
				case <-asset.Released():
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Copy the member to this path")
	cmd.Flags().BoolVar(&hold, "hold", false, "Keep the temporary copy until its grace window ends")
	return cmd
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return out.Close()
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		archive bool
		output  string
	)

	cmd := &cobra.Command{
		Use:       "export <clients|appointments|payments>",
		Short:     "Download a CSV export",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"clients", "appointments", "payments"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := api(cmd)
			if err != nil {
				return err
			}
			exp, err := c.Export(cmd.Context(), args[0], archive)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(exp.Content)
				return err
			}
			if output == "" {
				output = exp.Filename
			}
			if err := os.WriteFile(output, exp.Content, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", output, len(exp.Content))
			if exp.ArchiveURL != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "archived at %s\n", exp.ArchiveURL)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&archive, "archive", false, "also store the file in object storage")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default the server's file name)")
	return cmd
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/crm-manager/internal/config"
)

func newEnvCheckCmd() *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "env-check",
		Short: "Check that the server's required environment is set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
				return err
			}

			missing := config.MissingKeys(os.LookupEnv)
			w := cmd.OutOrStdout()
			for _, k := range config.RequiredKeys {
				state := "ok"
				for _, m := range missing {
					if m == k {
						state = "MISSING"
					}
				}
				fmt.Fprintf(w, "%-14s %s\n", k, state)
			}

			if len(missing) > 0 {
				return fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&files, "env-file", nil, "env files to load (default .env)")
	return cmd
}

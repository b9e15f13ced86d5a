package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BruksfildServices01/crm-manager/internal/apiclient"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "crmctl",
		Short:         "Command line front-end for the CRM API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cfgFile)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.crmctl.yaml)")
	root.PersistentFlags().String("api-url", "http://localhost:8080", "CRM API base URL")
	root.PersistentFlags().String("token", "", "bearer token")
	_ = viper.BindPFlag("api_url", root.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("token", root.PersistentFlags().Lookup("token"))

	root.AddCommand(
		newLoginCmd(),
		newClientsCmd(),
		newAppointmentsCmd(),
		newPaymentsCmd(),
		newDashboardCmd(),
		newExportCmd(),
		newEnvCheckCmd(),
	)
	return root
}

func loadConfig(cfgFile string) error {
	viper.SetEnvPrefix("CRM")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".crmctl")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			return err
		}
	}
	return nil
}

// api returns a client, logging in with CRM_EMAIL / CRM_PASSWORD when no
// token is configured.
func api(cmd *cobra.Command) (*apiclient.Client, error) {
	c := apiclient.New(viper.GetString("api_url"), viper.GetString("token"))
	if c.Token() != "" {
		return c, nil
	}

	email, password := viper.GetString("email"), viper.GetString("password")
	if email == "" || password == "" {
		return nil, errors.New("not logged in: run `crmctl login` or set CRM_TOKEN")
	}
	if _, err := c.Login(cmd.Context(), email, password); err != nil {
		return nil, err
	}
	return c, nil
}

func newLoginCmd() *cobra.Command {
	var email, password string
	var save bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print (or save) a token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := apiclient.New(viper.GetString("api_url"), "")
			token, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			if !save {
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			}

			viper.Set("token", token)
			path := viper.ConfigFileUsed()
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				path = filepath.Join(home, ".crmctl.yaml")
			}
			if err := viper.WriteConfigAs(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "token saved to", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "user e-mail")
	cmd.Flags().StringVar(&password, "password", "", "user password")
	cmd.Flags().BoolVar(&save, "save", false, "store the token in the config file")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

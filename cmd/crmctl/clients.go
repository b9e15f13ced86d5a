package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/crm-manager/internal/apiclient"
	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
	"github.com/BruksfildServices01/crm-manager/internal/viewmodel"
)

// errorer is any view-model that records its last failure.
type errorer interface {
	Err() string
}

func failed(vm errorer) error {
	return errors.New(vm.Err())
}

func newClientsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "clients", Short: "Manage clients"}
	cmd.AddCommand(clientsListCmd(), clientsAddCmd(), clientsDeleteCmd(), clientsSearchCmd())
	return cmd
}

func printClients(cmd *cobra.Command, rows []dto.ClientListDTO) error {
	out := make([][]string, 0, len(rows))
	for _, c := range rows {
		out = append(out, []string{
			c.ID.String(), c.Name, c.Phone, c.Email, c.Status, c.Origin,
			c.LastContact, c.ContactStatus, fmt.Sprint(c.TotalAppointments), money(c.TotalSpent),
		})
	}
	return table(cmd.OutOrStdout(),
		[]string{"ID", "NAME", "PHONE", "EMAIL", "STATUS", "ORIGIN", "LAST CONTACT", "CONTACT", "APPTS", "SPENT"},
		out)
}

func clientsListCmd() *cobra.Command {
	var (
		query  string
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients, most recently contacted first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := api(cmd)
			if err != nil {
				return err
			}
			vm := viewmodel.NewClients(c)
			if err := vm.Reload(cmd.Context()); err != nil {
				return err
			}

			render := func() error { return printClients(cmd, vm.Filter(query)) }
			if err := render(); err != nil || !follow {
				return err
			}
			return followTable(cmd, c, realtime.TableClients, vm, render)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by name, phone or e-mail")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "reprint on every change")
	return cmd
}

func clientsAddCmd() *cobra.Command {
	var in apiclient.ClientInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := api(cmd)
			if err != nil {
				return err
			}
			vm := viewmodel.NewClients(c)
			if !vm.Create(cmd.Context(), in) {
				return failed(vm)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "client %q created (%d total)\n", in.Name, len(vm.Items()))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "full name")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&in.Email, "email", "", "e-mail")
	cmd.Flags().StringVar(&in.Status, "status", "", "Active, Pending or Inactive")
	cmd.Flags().StringVar(&in.Origin, "origin", "", "Referral, SocialMedia, WhatsApp or Other")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "free notes")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func clientsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client with its appointments and payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id: %w", err)
			}
			c, err := api(cmd)
			if err != nil {
				return err
			}
			vm := viewmodel.NewClients(c)
			if !vm.Delete(cmd.Context(), id) {
				return failed(vm)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
}

func clientsSearchCmd() *cobra.Command {
	var f apiclient.ClientSearch

	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search clients on the server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.Term = args[0]
			}
			c, err := api(cmd)
			if err != nil {
				return err
			}
			vm := viewmodel.NewClients(c)
			rows, ok := vm.Search(cmd.Context(), f)
			if !ok {
				return failed(vm)
			}
			return printClients(cmd, rows)
		},
	}
	cmd.Flags().StringVar(&f.Status, "status", "", "client status")
	cmd.Flags().StringVar(&f.Origin, "origin", "", "client origin")
	cmd.Flags().StringVar(&f.DateFrom, "from", "", "registered on or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.DateTo, "to", "", "registered on or before (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.Limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&f.Offset, "offset", 0, "page offset")
	return cmd
}

package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/crm-manager/internal/apiclient"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
	"github.com/BruksfildServices01/crm-manager/internal/viewmodel"
)

func newPaymentsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "payments", Short: "Manage payments"}
	cmd.AddCommand(paymentsListCmd(), paymentsOverdueCmd(), paymentsPayCmd(), paymentsStatsCmd())
	return cmd
}

func printPayments(cmd *cobra.Command, rows []models.Payment) error {
	out := make([][]string, 0, len(rows))
	for _, p := range rows {
		name := ""
		if p.Client != nil {
			name = p.Client.Name
		}
		out = append(out, []string{
			p.ID.String(), name, p.ServiceName, money(p.Value), p.DueDate, p.Status,
			deref(p.PaymentDate), deref(p.PaymentMethod),
		})
	}
	return table(cmd.OutOrStdout(),
		[]string{"ID", "CLIENT", "SERVICE", "VALUE", "DUE", "STATUS", "PAID ON", "METHOD"}, out)
}

func loadPayments(cmd *cobra.Command) (*apiclient.Client, *viewmodel.Payments, error) {
	c, err := api(cmd)
	if err != nil {
		return nil, nil, err
	}
	vm := viewmodel.NewPayments(c)
	if err := vm.Reload(cmd.Context()); err != nil {
		return nil, nil, err
	}
	return c, vm, nil
}

func paymentsListCmd() *cobra.Command {
	var (
		query  string
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payments, latest due date first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, vm, err := loadPayments(cmd)
			if err != nil {
				return err
			}

			render := func() error { return printPayments(cmd, vm.Filter(query)) }
			if err := render(); err != nil || !follow {
				return err
			}
			return followTable(cmd, c, realtime.TablePayments, vm, render)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by service, status, method, notes or client")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "reprint on every change")
	return cmd
}

func paymentsOverdueCmd() *cobra.Command {
	var (
		recompute bool
		every     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "List payments past their due date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, vm, err := loadPayments(cmd)
			if err != nil {
				return err
			}

			if every > 0 {
				vm.RunOverdue(cmd.Context(), every, func(ok bool) {
					if !ok {
						fmt.Fprintln(cmd.ErrOrStderr(), "error:", vm.Err())
						return
					}
					fmt.Fprintf(cmd.OutOrStdout(), "\n== %s ==\n", time.Now().Format("2006-01-02 15:04"))
					if err := printPayments(cmd, vm.Overdue()); err != nil {
						fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
					}
				})
				return nil
			}

			if recompute && !vm.RecomputeOverdue(cmd.Context()) {
				return failed(vm)
			}
			return printPayments(cmd, vm.Overdue())
		},
	}
	cmd.Flags().BoolVar(&recompute, "recompute", false, "flag past-due pending payments on the server first")
	cmd.Flags().DurationVar(&every, "every", 0, "keep recomputing and reprinting at this period (e.g. 1h)")
	return cmd
}

func paymentsPayCmd() *cobra.Command {
	var method, date string

	cmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Mark a payment as paid",
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
			vm := viewmodel.NewPayments(c)
			if !vm.MarkAsPaid(cmd.Context(), id, method, date) {
				return failed(vm)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "paid")
			return nil
		},
	}
	cmd.Flags().StringVar(&method, "method", "", "PIX, Boleto, Card, Transfer or Cash")
	cmd.Flags().StringVar(&date, "date", "", "payment date (default today)")
	_ = cmd.MarkFlagRequired("method")
	return cmd
}

func paymentsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Totals per payment status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, vm, err := loadPayments(cmd)
			if err != nil {
				return err
			}
			s := vm.Stats()
			return table(cmd.OutOrStdout(), []string{"STATUS", "COUNT", "TOTAL"}, [][]string{
				{"Paid", fmt.Sprint(s.CountPaid), money(s.TotalPaid)},
				{"Pending", fmt.Sprint(s.CountPending), money(s.TotalPending)},
				{"Overdue", fmt.Sprint(s.CountOverdue), money(s.TotalOverdue)},
				{"All", fmt.Sprint(s.TotalPayments), money(s.TotalRevenue)},
			})
		},
	}
}

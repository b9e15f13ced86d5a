package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/crm-manager/internal/apiclient"
	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
	"github.com/BruksfildServices01/crm-manager/internal/viewmodel"
)

func newAppointmentsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "appointments", Aliases: []string{"appts"}, Short: "Manage appointments"}
	cmd.AddCommand(appointmentsListCmd(), appointmentsScheduleCmd(), appointmentsCancelCmd(), appointmentsBookCmd())
	return cmd
}

func appointmentsListCmd() *cobra.Command {
	var (
		date, clientID, query string
		follow                bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := api(cmd)
			if err != nil {
				return err
			}
			var byClient uuid.UUID
			if clientID != "" {
				if byClient, err = uuid.Parse(clientID); err != nil {
					return fmt.Errorf("invalid client id: %w", err)
				}
			}

			vm := viewmodel.NewAppointments(c)
			if err := vm.Reload(cmd.Context()); err != nil {
				return err
			}

			render := func() error {
				var rows []models.Appointment
				switch {
				case byClient != uuid.Nil:
					rows = vm.ByClient(byClient)
				case date != "":
					rows = vm.ByDate(date)
				default:
					rows = vm.Filter(query)
				}

				out := make([][]string, 0, len(rows))
				for _, a := range rows {
					name := ""
					if a.Client != nil {
						name = a.Client.Name
					}
					out = append(out, []string{
						a.ID.String(), a.AppointmentDate, a.AppointmentTime, name, a.ServiceName, a.Status, money(a.Value),
					})
				}
				return table(cmd.OutOrStdout(), []string{"ID", "DATE", "TIME", "CLIENT", "SERVICE", "STATUS", "VALUE"}, out)
			}

			if err := render(); err != nil || !follow {
				return err
			}
			return followTable(cmd, c, realtime.TableAppointments, vm, render)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "only this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&clientID, "client", "", "only this client id")
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by service, status, notes or client")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "reprint on every change")
	return cmd
}

func printSchedule(cmd *cobra.Command, rows []dto.AppointmentListDTO) error {
	out := make([][]string, 0, len(rows))
	for _, a := range rows {
		out = append(out, []string{a.AppointmentTime, a.ClientName, a.ClientPhone, a.ServiceName, a.Status, money(a.Value)})
	}
	return table(cmd.OutOrStdout(), []string{"TIME", "CLIENT", "PHONE", "SERVICE", "STATUS", "VALUE"}, out)
}

func appointmentsScheduleCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the day's agenda",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := api(cmd)
			if err != nil {
				return err
			}
			vm := viewmodel.NewAppointments(c)
			rows, ok := vm.DailySchedule(cmd.Context(), date)
			if !ok {
				return failed(vm)
			}
			return printSchedule(cmd, rows)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to show (default today)")
	return cmd
}

func appointmentsCancelCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an appointment",
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
			vm := viewmodel.NewAppointments(c)
			if !vm.Cancel(cmd.Context(), id, reason) {
				return failed(vm)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "cancellation reason")
	return cmd
}

func appointmentsBookCmd() *cobra.Command {
	var (
		in      apiclient.AppointmentWithPaymentInput
		client  string
		service string
		value   string
		bill    bool
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment, optionally billing it in the same step",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if in.ClientID, err = uuid.Parse(client); err != nil {
				return fmt.Errorf("invalid client id: %w", err)
			}
			if service != "" {
				id, err := uuid.Parse(service)
				if err != nil {
					return fmt.Errorf("invalid service id: %w", err)
				}
				in.ServiceID = &id
			}
			if value != "" {
				v, err := decimal.NewFromString(value)
				if err != nil {
					return fmt.Errorf("invalid value: %w", err)
				}
				in.Value = &v
			}

			c, err := api(cmd)
			if err != nil {
				return err
			}
			vm := viewmodel.NewAppointments(c)

			if !bill {
				if !vm.Create(cmd.Context(), in.AppointmentInput) {
					return failed(vm)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "booked")
				return nil
			}

			appointmentID, paymentID, ok := vm.CreateWithPayment(cmd.Context(), in)
			if !ok {
				return failed(vm)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "appointment %s\npayment     %s\n", appointmentID, paymentID)
			return nil
		},
	}
	cmd.Flags().StringVar(&client, "client", "", "client id")
	cmd.Flags().StringVar(&service, "service-id", "", "catalog service id (prefills name and value)")
	cmd.Flags().StringVar(&in.ServiceName, "service", "", "service name")
	cmd.Flags().StringVar(&in.Date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Time, "time", "", "time (HH:MM)")
	cmd.Flags().StringVar(&value, "value", "", "price")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "notes")
	cmd.Flags().BoolVar(&bill, "bill", false, "also create the payment")
	cmd.Flags().StringVar(&in.DueDate, "due", "", "payment due date (default the appointment date)")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

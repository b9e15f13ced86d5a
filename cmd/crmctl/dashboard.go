package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/crm-manager/internal/viewmodel"
)

func newDashboardCmd() *cobra.Command {
	var (
		watch    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard, optionally refreshing it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := api(cmd)
			if err != nil {
				return err
			}
			vm := viewmodel.NewDashboard(c)
			w := cmd.OutOrStdout()

			if !watch {
				if !vm.Refresh(cmd.Context()) {
					return failed(vm)
				}
				return printDashboard(w, vm.Data())
			}

			vm.Run(cmd.Context(), interval, func(data viewmodel.DashboardData, errMsg string) {
				if errMsg != "" {
					fmt.Fprintf(w, "refresh failed: %s\n", errMsg)
					return
				}
				if err := printDashboard(w, data); err != nil {
					fmt.Fprintf(w, "print failed: %v\n", err)
				}
			})
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep refreshing until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", viewmodel.DefaultDashboardInterval, "refresh period with --watch")
	return cmd
}

func printDashboard(w io.Writer, d viewmodel.DashboardData) error {
	s := d.Stats
	fmt.Fprintf(w, "\n== Dashboard %s ==\n", d.UpdatedAt.Format("2006-01-02 15:04"))
	if err := table(w, []string{"INDICATOR", "VALUE"}, [][]string{
		{"Active clients", fmt.Sprint(s.ActiveClients)},
		{"New clients this week", fmt.Sprint(s.NewClientsWeek)},
		{"Total clients", fmt.Sprint(s.TotalClients)},
		{"Appointments", fmt.Sprint(s.TotalAppointments)},
		{"Appointments this week", fmt.Sprint(s.AppointmentsThisWeek)},
		{"Completed", fmt.Sprint(s.CompletedAppointments)},
		{"Completed this month", fmt.Sprint(s.CompletedThisMonth)},
		{"Revenue", money(s.TotalRevenue)},
		{"Revenue this month", money(s.RevenueThisMonth)},
		{"Pending", money(s.PendingRevenue)},
		{"Overdue", money(s.OverdueRevenue)},
	}); err != nil {
		return err
	}

	fmt.Fprintln(w)
	rows := make([][]string, 0, len(d.Performance))
	for _, m := range d.Performance {
		rows = append(rows, []string{m.Metric, money(m.Value), fmt.Sprint(m.Count), fmt.Sprintf("%.2f%%", m.Percentage)})
	}
	if err := table(w, []string{"METRIC", "VALUE", "COUNT", "SHARE"}, rows); err != nil {
		return err
	}

	fmt.Fprintln(w)
	rows = rows[:0]
	for _, r := range d.Revenue {
		rows = append(rows, []string{r.Month, money(r.Revenue), fmt.Sprint(r.Appointments), fmt.Sprint(r.Clients)})
	}
	if err := table(w, []string{"MONTH", "REVENUE", "APPTS", "NEW CLIENTS"}, rows); err != nil {
		return err
	}

	fmt.Fprintln(w)
	rows = rows[:0]
	for _, c := range d.RecentClients {
		rows = append(rows, []string{c.Name, c.Phone, c.RegistrationDate})
	}
	return table(w, []string{"RECENT CLIENT", "PHONE", "SINCE"}, rows)
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/motormarket/adminctl"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show dashboard metrics",
}

var dashboardSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the metric summary cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		state := adminctl.NewDashboardState(client)
		if err := state.FetchSummary(cmd.Context()); err != nil {
			return err
		}
		s := state.Summary()
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "METRIC\tVALUE\tCHANGE")
		fmt.Fprintf(w, "Active Users\t%d\t%s\n", s.ActiveUser, formatChange(s.ActiveUserChange))
		fmt.Fprintf(w, "Total Buyers\t%d\t%s\n", s.TotalBuyers, formatChange(s.BuyersChange))
		fmt.Fprintf(w, "Total Sellers\t%d\t%s\n", s.TotalSellers, formatChange(s.SellersChange))
		fmt.Fprintf(w, "Total Earning\t%.2f\t%s\n", s.TotalEarning, formatChange(s.EarningChange))
		return w.Flush()
	},
}

var dashboardGraphsCmd = &cobra.Command{
	Use:   "graphs",
	Short: "Show the chart series",
	RunE: func(cmd *cobra.Command, args []string) error {
		state := adminctl.NewDashboardState(client)
		if err := state.FetchGraphs(cmd.Context()); err != nil {
			return err
		}
		charts := state.Charts()
		printSeries("Sales Details", charts.SalesDetails)
		printSeries("Revenue", charts.Revenue)
		return nil
	},
}

func formatChange(c adminctl.Change) string {
	if c.Direction == adminctl.DirectionNone {
		return c.Text
	}
	return fmt.Sprintf("%.2f%% %s (%s)", c.Percentage, c.Direction, c.Text)
}

func printSeries(title string, s *adminctl.Series) {
	if s == nil {
		fmt.Printf("%s: no data\n", title)
		return
	}
	fmt.Printf("%s (%d points)\n", title, len(s.Labels))
	for _, ds := range s.Datasets {
		fmt.Printf("  %s: %d values\n", ds.Label, len(ds.Data))
	}
}

func init() {
	dashboardCmd.AddCommand(dashboardSummaryCmd)
	dashboardCmd.AddCommand(dashboardGraphsCmd)
	rootCmd.AddCommand(dashboardCmd)
}

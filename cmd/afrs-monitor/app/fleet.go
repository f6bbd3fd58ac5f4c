package app

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/fleetapi"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/options"
)

// newFleetCommand groups the operator-facing inspection commands. They hit
// the upstream fleet API directly, so they work without a running monitor.
func newFleetCommand() *cobra.Command {
	upstream := options.NewUpstreamOptions()

	cmd := &cobra.Command{
		Use:   "fleet",
		Short: "Inspect the fleet state from the command line",
	}
	upstream.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(&cobra.Command{
		Use:   "vehicles",
		Short: "List the current vehicles",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := fleetapi.NewClient(upstream.BaseURL, upstream.Timeout)
			vehicles, err := client.FetchVehicles(cmd.Context())
			if err != nil {
				return err
			}

			table := uitable.New()
			table.AddRow("ID", "DISPLAY", "CLASS", "STATE", "OPEN ALERTS", "LAST UPDATED")
			for _, v := range vehicles {
				table.AddRow(v.ID, v.DisplayID, v.Class, v.State, v.OpenAlertCount, v.LastUpdated.Format("15:04:05"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "alerts",
		Short: "List the current alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := fleetapi.NewClient(upstream.BaseURL, upstream.Timeout)
			alerts, err := client.FetchAlerts(cmd.Context())
			if err != nil {
				return err
			}

			table := uitable.New()
			table.AddRow("ID", "VEHICLE", "SEVERITY", "STATUS", "RULE", "LAST SEEN")
			for _, a := range alerts {
				table.AddRow(a.ID, a.VehicleID, a.Severity, a.Status, a.DisplayRuleName(), a.LastSeen.Format("15:04:05"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "actions",
		Short: "List recorded operator actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := fleetapi.NewClient(upstream.BaseURL, upstream.Timeout)
			actions, err := client.FetchActions(cmd.Context())
			if err != nil {
				return err
			}

			table := uitable.New()
			table.AddRow("ID", "ALERT", "VEHICLE", "TYPE", "OPERATOR", "CREATED")
			for _, a := range actions {
				table.AddRow(a.ID, a.AlertID, a.VehicleID, a.Type, a.Operator, a.CreatedAt.Format("15:04:05"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	})

	return cmd
}

package device

import (
	"fmt"
	"os"
	"time"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/internal/cli/timeutil"
	"github.com/signcast/signcast/pkg/apiclient"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices",
	Long: `List the tenant's registered devices with their last-seen state.

Examples:
  signcastctl device list
  signcastctl device list --tenant <tenant-id>`,
	RunE: runList,
}

// DeviceList is a list of devices for table rendering.
type DeviceList []apiclient.Device

// Headers implements TableRenderer.
func (dl DeviceList) Headers() []string {
	return []string{"ID", "NAME", "LOCATION", "ACTIVE", "LAST SEEN", "PLAYER"}
}

// Rows implements TableRenderer.
func (dl DeviceList) Rows() [][]string {
	rows := make([][]string, 0, len(dl))
	for _, d := range dl {
		lastSeen := "never"
		if d.LastSeenAt != nil {
			lastSeen = formatLastSeen(*d.LastSeenAt)
		}
		player := "-"
		if d.State != nil && d.State.PlayerVersion != "" {
			player = d.State.PlayerVersion
		}
		rows = append(rows, []string{
			d.ID,
			d.Name,
			cmdutil.EmptyOr(d.Location, "-"),
			cmdutil.BoolToYesNo(d.Active),
			lastSeen,
			player,
		})
	}
	return rows
}

// formatLastSeen renders recent timestamps as a relative age.
func formatLastSeen(t time.Time) string {
	age := time.Since(t)
	if age < 0 {
		age = 0
	}
	if age < 24*time.Hour {
		return timeutil.FormatDuration(age) + " ago"
	}
	return timeutil.FormatTimestamp(t)
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	devices, err := client.ListDevices(cmdutil.GetTenantID())
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, devices, len(devices) == 0, "No devices found.", DeviceList(devices))
}

package device

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/internal/cli/output"
	"github.com/signcast/signcast/internal/cli/timeutil"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <device-id>",
	Short: "Show device details",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	d, err := client.GetDevice(args[0])
	if err != nil {
		return fmt.Errorf("failed to get device: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintResource(os.Stdout, d, nil)
	}

	pairs := [][2]string{
		{"ID", d.ID},
		{"Name", d.Name},
		{"Location", cmdutil.EmptyOr(d.Location, "-")},
		{"Pairing code", d.PairingCode},
		{"Active", cmdutil.BoolToYesNo(d.Active)},
	}
	if d.PlaylistID != nil {
		pairs = append(pairs, [2]string{"Playlist", *d.PlaylistID})
	}
	if d.LayoutID != nil {
		pairs = append(pairs, [2]string{"Layout", *d.LayoutID})
	}
	if d.LastSeenAt != nil {
		pairs = append(pairs, [2]string{"Last seen", timeutil.FormatTimestamp(*d.LastSeenAt)})
	} else {
		pairs = append(pairs, [2]string{"Last seen", "never"})
	}
	if d.State != nil {
		if d.State.PlayerVersion != "" {
			pairs = append(pairs, [2]string{"Player version", d.State.PlayerVersion})
		}
		if d.State.IPAddress != "" {
			pairs = append(pairs, [2]string{"IP address", d.State.IPAddress})
		}
	}
	return output.SimpleTable(os.Stdout, pairs)
}

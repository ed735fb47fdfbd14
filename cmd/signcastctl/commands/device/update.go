package device

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/pkg/apiclient"
	"github.com/spf13/cobra"
)

var (
	updateName     string
	updateLocation string
	updatePlaylist string
	updateLayout   string
	updateActive   bool
)

var updateCmd = &cobra.Command{
	Use:   "update <device-id>",
	Short: "Update a device",
	Long: `Update a device's name, location, assignments or active flag.

Only the flags you pass are changed.

Examples:
  # Assign a playlist
  signcastctl device update <device-id> --playlist <playlist-id>

  # Deactivate a device
  signcastctl device update <device-id> --active=false`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "New device name")
	updateCmd.Flags().StringVar(&updateLocation, "location", "", "New device location")
	updateCmd.Flags().StringVar(&updatePlaylist, "playlist", "", "Playlist ID to assign")
	updateCmd.Flags().StringVar(&updateLayout, "layout", "", "Layout ID to assign")
	updateCmd.Flags().BoolVar(&updateActive, "active", true, "Whether the device is active")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	var req apiclient.UpdateDeviceRequest
	if cmd.Flags().Changed("name") {
		req.Name = &updateName
	}
	if cmd.Flags().Changed("location") {
		req.Location = &updateLocation
	}
	if cmd.Flags().Changed("playlist") {
		req.PlaylistID = &updatePlaylist
	}
	if cmd.Flags().Changed("layout") {
		req.LayoutID = &updateLayout
	}
	if cmd.Flags().Changed("active") {
		req.Active = &updateActive
	}

	d, err := client.UpdateDevice(args[0], req)
	if err != nil {
		return fmt.Errorf("failed to update device: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, d,
		fmt.Sprintf("Device '%s' updated", d.Name))
}

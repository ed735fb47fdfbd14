// Package device implements device management commands for signcastctl.
package device

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for device management.
var Cmd = &cobra.Command{
	Use:   "device",
	Short: "Device management",
	Long: `Manage signage player devices on the SignCast server.

Registering a device returns its pairing code, which the player uses
to authenticate heartbeats. The number of active devices per tenant is
limited by the tenant's package.

Examples:
  # Register a new screen
  signcastctl device register --name "Lobby screen" --location "HQ lobby"

  # List devices with their last-seen state
  signcastctl device list

  # Assign a playlist
  signcastctl device update <device-id> --playlist <playlist-id>`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(registerCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(deleteCmd)
}

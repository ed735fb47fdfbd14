package device

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	registerName     string
	registerLocation string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new device",
	Long: `Register a new player device for the tenant.

The returned pairing code must be entered on the player once; it
authenticates the device's heartbeats from then on. Registration fails
when the tenant has reached its package's device limit.

Examples:
  signcastctl device register --name "Lobby screen" --location "HQ lobby"`,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "Device name (required)")
	registerCmd.Flags().StringVar(&registerLocation, "location", "", "Physical location of the device")
	_ = registerCmd.MarkFlagRequired("name")
}

func runRegister(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	d, err := client.RegisterDevice(cmdutil.GetTenantID(), registerName, registerLocation)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintResource(os.Stdout, d, nil)
	}

	fmt.Printf("Device '%s' registered (ID: %s)\n", d.Name, d.ID)
	fmt.Printf("Pairing code: %s\n", d.PairingCode)
	fmt.Println("Enter the pairing code on the player to connect it.")
	return nil
}

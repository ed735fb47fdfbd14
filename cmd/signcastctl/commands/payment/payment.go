// Package payment implements payment management commands for signcastctl.
package payment

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for payment management.
var Cmd = &cobra.Command{
	Use:   "payment",
	Short: "Payment management",
	Long: `Manage package payments on the SignCast server.

A payment is created pending for a tenant and package. Confirming it
applies the package to the tenant; if the new package has a smaller
storage limit the eviction report is printed.

Examples:
  # Create a pending payment
  signcastctl payment create --package <package-id>

  # Confirm it after the provider settles
  signcastctl payment confirm <payment-id> --ref ch_1a2b3c

  # Mark it failed
  signcastctl payment fail <payment-id>`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(confirmCmd)
	Cmd.AddCommand(failCmd)
}

// Package pkg implements subscription package management commands for signcastctl.
package pkg

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for package management.
var Cmd = &cobra.Command{
	Use:   "package",
	Short: "Subscription package management",
	Long: `Manage subscription packages on the SignCast server.

Packages define the storage limit, device limit and pricing that
tenants subscribe to. Creating and deleting packages requires admin
privileges; listing is open to all users.

Examples:
  # List available packages
  signcastctl package list

  # Create a package
  signcastctl package create --name Pro --storage 50 --devices 25 --price 4900

  # Delete a package
  signcastctl package delete <package-id>`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(deleteCmd)
}

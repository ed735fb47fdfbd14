// Package tenant implements tenant management commands for signcastctl.
package tenant

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for tenant management.
var Cmd = &cobra.Command{
	Use:   "tenant",
	Short: "Tenant management",
	Long: `Manage tenants on the SignCast server.

Tenant commands allow you to create, list, inspect, and delete tenants,
and to change a tenant's subscription package. These operations require
admin privileges.

Examples:
  # List all tenants
  signcastctl tenant list

  # Create a tenant
  signcastctl tenant create --name "Acme Retail" --slug acme --package <pkg-id>

  # Move a tenant to a smaller package (may evict oldest content)
  signcastctl tenant set-package <tenant-id> <pkg-id>

  # Delete a tenant
  signcastctl tenant delete <tenant-id>`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(setPackageCmd)
	Cmd.AddCommand(deleteCmd)
}

package tenant

import (
	"fmt"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <tenant-id>",
	Short: "Delete a tenant",
	Long: `Delete a tenant and all of its resources.

This removes the tenant's contents, playlists, layouts, devices and
payments. The operation cannot be undone.

Examples:
  # Delete with confirmation prompt
  signcastctl tenant delete 7f3c9a1e-...

  # Skip the prompt
  signcastctl tenant delete 7f3c9a1e-... --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	id := args[0]
	name := id
	if tenant, err := client.GetTenant(id); err == nil {
		name = fmt.Sprintf("%s (%s)", tenant.Name, id)
	}

	return cmdutil.RunDeleteWithConfirmation("tenant", name, deleteForce, func() error {
		return client.DeleteTenant(id)
	})
}

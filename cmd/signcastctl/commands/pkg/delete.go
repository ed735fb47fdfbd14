package pkg

import (
	"fmt"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <package-id>",
	Short: "Delete a subscription package",
	Long: `Delete a subscription package.

Packages that tenants are still subscribed to cannot be deleted.`,
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
	if p, err := client.GetPackage(id); err == nil {
		name = fmt.Sprintf("%s (%s)", p.Name, id)
	}

	return cmdutil.RunDeleteWithConfirmation("package", name, deleteForce, func() error {
		return client.DeletePackage(id)
	})
}

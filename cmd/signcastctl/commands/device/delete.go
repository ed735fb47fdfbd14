package device

import (
	"fmt"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <device-id>",
	Short: "Delete a device",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
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
	if d, err := client.GetDevice(id); err == nil {
		name = fmt.Sprintf("%s (%s)", d.Name, id)
	}

	return cmdutil.RunDeleteWithConfirmation("device", name, deleteForce, func() error {
		return client.DeleteDevice(id)
	})
}

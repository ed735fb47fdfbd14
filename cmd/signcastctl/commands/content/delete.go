package content

import (
	"fmt"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <content-id>",
	Short: "Delete a content file",
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
	if c, err := client.GetContent(id); err == nil {
		name = fmt.Sprintf("%s (%s)", c.Filename, id)
	}

	return cmdutil.RunDeleteWithConfirmation("content", name, deleteForce, func() error {
		return client.DeleteContent(id)
	})
}

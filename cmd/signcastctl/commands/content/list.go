package content

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/pkg/apiclient"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List content",
	Long: `List the tenant's content, newest first.

Examples:
  signcastctl content list
  signcastctl content list --tenant <tenant-id>`,
	RunE: runList,
}

// ContentList is a list of content items for table rendering.
type ContentList []apiclient.Content

// Headers implements TableRenderer.
func (cl ContentList) Headers() []string {
	return []string{"ID", "FILENAME", "KIND", "SIZE", "CREATED"}
}

// Rows implements TableRenderer.
func (cl ContentList) Rows() [][]string {
	rows := make([][]string, 0, len(cl))
	for _, c := range cl {
		rows = append(rows, []string{
			c.ID,
			c.Filename,
			c.Kind,
			cmdutil.FormatGB(c.SizeGB),
			c.CreatedAt,
		})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	contents, err := client.ListContents(cmdutil.GetTenantID())
	if err != nil {
		return fmt.Errorf("failed to list content: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, contents, len(contents) == 0, "No content found.", ContentList(contents))
}

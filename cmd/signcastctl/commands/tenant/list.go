package tenant

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/pkg/apiclient"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tenants",
	Long: `List all tenants on the SignCast server.

Examples:
  # List tenants as table
  signcastctl tenant list

  # List as JSON
  signcastctl tenant list -o json`,
	RunE: runList,
}

// TenantList is a list of tenants for table rendering.
type TenantList []apiclient.Tenant

// Headers implements TableRenderer.
func (tl TenantList) Headers() []string {
	return []string{"ID", "NAME", "SLUG", "PACKAGE", "ACTIVE"}
}

// Rows implements TableRenderer.
func (tl TenantList) Rows() [][]string {
	rows := make([][]string, 0, len(tl))
	for _, t := range tl {
		pkg := t.PackageID
		if t.Package != nil {
			pkg = t.Package.Name
		}
		rows = append(rows, []string{t.ID, t.Name, t.Slug, cmdutil.EmptyOr(pkg, "-"), cmdutil.BoolToYesNo(t.Active)})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	tenants, err := client.ListTenants()
	if err != nil {
		return fmt.Errorf("failed to list tenants: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, tenants, len(tenants) == 0, "No tenants found.", TenantList(tenants))
}

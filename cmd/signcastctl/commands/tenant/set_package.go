package tenant

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/internal/cli/output"
	"github.com/spf13/cobra"
)

var setPackageCmd = &cobra.Command{
	Use:   "set-package <tenant-id> <package-id>",
	Short: "Change a tenant's subscription package",
	Long: `Change the package a tenant is subscribed to.

Downgrading to a package with a smaller storage limit evicts the
tenant's oldest content until usage fits the new limit. The eviction
report is printed when this happens.

Examples:
  signcastctl tenant set-package 7f3c9a1e-... 2b14d0c8-...`,
	Args: cobra.ExactArgs(2),
	RunE: runSetPackage,
}

func runSetPackage(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	tenant, err := client.SetTenantPackage(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to change package: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintResource(os.Stdout, tenant, nil)
	}

	pkg := tenant.PackageID
	if tenant.Package != nil {
		pkg = tenant.Package.Name
	}
	fmt.Printf("Tenant '%s' moved to package %s\n", tenant.Name, pkg)
	cmdutil.PrintStorageCleanup(tenant.StorageCleanup)
	return nil
}

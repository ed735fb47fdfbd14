package tenant

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/pkg/apiclient"
	"github.com/spf13/cobra"
)

var (
	createName    string
	createSlug    string
	createPackage string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new tenant",
	Long: `Create a new tenant subscribed to a package.

The slug identifies the tenant in URLs and must be unique.

Examples:
  # Create a tenant on the starter package
  signcastctl tenant create --name "Acme Retail" --slug acme-retail --package <package-id>`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "Tenant display name (required)")
	createCmd.Flags().StringVar(&createSlug, "slug", "", "URL-safe tenant identifier (required)")
	createCmd.Flags().StringVar(&createPackage, "package", "", "Package ID the tenant subscribes to (required)")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("slug")
	_ = createCmd.MarkFlagRequired("package")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	tenant, err := client.CreateTenant(&apiclient.CreateTenantRequest{
		Name:      createName,
		Slug:      createSlug,
		PackageID: createPackage,
	})
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, tenant,
		fmt.Sprintf("Tenant '%s' created (ID: %s)", tenant.Name, tenant.ID))
}

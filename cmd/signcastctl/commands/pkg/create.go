package pkg

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/pkg/apiclient"
	"github.com/spf13/cobra"
)

var (
	createName        string
	createDescription string
	createStorageGB   int64
	createDevices     int
	createPriceCents  int64
	createCurrency    string
	createBillingDays int
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a subscription package",
	Long: `Create a new subscription package.

Examples:
  # A paid package: 50 GB, 25 devices, EUR 49.00 monthly
  signcastctl package create --name Pro --storage 50 --devices 25 --price 4900

  # A free trial package
  signcastctl package create --name Trial --storage 1 --devices 2`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "Package name (required)")
	createCmd.Flags().StringVar(&createDescription, "description", "", "Package description")
	createCmd.Flags().Int64Var(&createStorageGB, "storage", 0, "Storage limit in GB (required)")
	createCmd.Flags().IntVar(&createDevices, "devices", 0, "Maximum number of devices (required)")
	createCmd.Flags().Int64Var(&createPriceCents, "price", 0, "Price in cents (0 = free)")
	createCmd.Flags().StringVar(&createCurrency, "currency", "EUR", "Price currency")
	createCmd.Flags().IntVar(&createBillingDays, "billing-days", 30, "Billing period in days")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("storage")
	_ = createCmd.MarkFlagRequired("devices")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	p, err := client.CreatePackage(&apiclient.CreatePackageRequest{
		Name:              createName,
		Description:       createDescription,
		StorageGB:         createStorageGB,
		MaxDevices:        createDevices,
		PriceCents:        createPriceCents,
		Currency:          createCurrency,
		BillingPeriodDays: createBillingDays,
	})
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, p,
		fmt.Sprintf("Package '%s' created (ID: %s)", p.Name, p.ID))
}

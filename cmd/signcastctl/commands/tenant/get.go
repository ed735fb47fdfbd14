package tenant

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/internal/cli/output"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <tenant-id>",
	Short: "Show tenant details",
	Long: `Display details of a single tenant, including its package and
current storage usage.

Examples:
  # Show a tenant
  signcastctl tenant get 7f3c9a1e-...

  # As JSON
  signcastctl tenant get 7f3c9a1e-... -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	tenant, err := client.GetTenant(args[0])
	if err != nil {
		return fmt.Errorf("failed to get tenant: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintResource(os.Stdout, tenant, nil)
	}

	pairs := [][2]string{
		{"ID", tenant.ID},
		{"Name", tenant.Name},
		{"Slug", tenant.Slug},
		{"Active", cmdutil.BoolToYesNo(tenant.Active)},
		{"Created", tenant.CreatedAt.Format("2006-01-02 15:04:05")},
	}
	if tenant.Package != nil {
		pairs = append(pairs,
			[2]string{"Package", tenant.Package.Name},
			[2]string{"Storage limit", fmt.Sprintf("%d GB", tenant.Package.StorageGB)},
			[2]string{"Device limit", fmt.Sprintf("%d", tenant.Package.MaxDevices)},
		)
	} else {
		pairs = append(pairs, [2]string{"Package", cmdutil.EmptyOr(tenant.PackageID, "-")})
	}
	if err := output.SimpleTable(os.Stdout, pairs); err != nil {
		return err
	}

	// Append the live storage picture for the tenant
	usage, err := client.GetStorageUsage(tenant.ID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Storage: %s / %s used (%.1f%%)\n",
			cmdutil.FormatGB(usage.Storage.UsedGB),
			cmdutil.FormatGB(usage.Storage.LimitGB),
			usage.Storage.UsagePercentage)
		if usage.Storage.IsOverLimit {
			fmt.Println("WARNING: tenant is over its storage limit")
		}
	}

	return nil
}

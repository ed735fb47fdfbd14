package pkg

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/internal/cli/output"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <package-id>",
	Short: "Show package details",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	p, err := client.GetPackage(args[0])
	if err != nil {
		return fmt.Errorf("failed to get package: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintResource(os.Stdout, p, nil)
	}

	return output.SimpleTable(os.Stdout, [][2]string{
		{"ID", p.ID},
		{"Name", p.Name},
		{"Description", cmdutil.EmptyOr(p.Description, "-")},
		{"Storage limit", fmt.Sprintf("%d GB", p.StorageGB)},
		{"Device limit", fmt.Sprintf("%d", p.MaxDevices)},
		{"Price", formatPrice(p.PriceCents, p.Currency)},
		{"Billing period", fmt.Sprintf("%d days", p.BillingPeriodDays)},
		{"Active", cmdutil.BoolToYesNo(p.Active)},
	})
}

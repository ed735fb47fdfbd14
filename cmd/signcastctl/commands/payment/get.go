package payment

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/internal/cli/output"
	"github.com/signcast/signcast/internal/cli/timeutil"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <payment-id>",
	Short: "Show payment details",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	p, err := client.GetPayment(args[0])
	if err != nil {
		return fmt.Errorf("failed to get payment: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintResource(os.Stdout, p, nil)
	}

	pairs := [][2]string{
		{"ID", p.ID},
		{"Tenant", p.TenantID},
		{"Package", p.PackageID},
		{"Amount", formatAmount(p.AmountCents, p.Currency)},
		{"Status", p.Status},
		{"External ref", cmdutil.EmptyOr(p.ExternalRef, "-")},
		{"Created", timeutil.FormatTimestamp(p.CreatedAt)},
	}
	if p.PaidAt != nil {
		pairs = append(pairs, [2]string{"Paid at", timeutil.FormatTimestamp(*p.PaidAt)})
	}
	return output.SimpleTable(os.Stdout, pairs)
}

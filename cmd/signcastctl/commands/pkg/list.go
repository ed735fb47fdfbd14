package pkg

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/pkg/apiclient"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscription packages",
	Long: `List all subscription packages on the SignCast server.

Examples:
  signcastctl package list
  signcastctl package list -o json`,
	RunE: runList,
}

// PackageList is a list of packages for table rendering.
type PackageList []apiclient.Package

// Headers implements TableRenderer.
func (pl PackageList) Headers() []string {
	return []string{"ID", "NAME", "STORAGE", "DEVICES", "PRICE", "ACTIVE"}
}

// Rows implements TableRenderer.
func (pl PackageList) Rows() [][]string {
	rows := make([][]string, 0, len(pl))
	for _, p := range pl {
		rows = append(rows, []string{
			p.ID,
			p.Name,
			fmt.Sprintf("%d GB", p.StorageGB),
			fmt.Sprintf("%d", p.MaxDevices),
			formatPrice(p.PriceCents, p.Currency),
			cmdutil.BoolToYesNo(p.Active),
		})
	}
	return rows
}

func formatPrice(cents int64, currency string) string {
	if cents == 0 {
		return "free"
	}
	return fmt.Sprintf("%.2f %s", float64(cents)/100, currency)
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	packages, err := client.ListPackages()
	if err != nil {
		return fmt.Errorf("failed to list packages: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, packages, len(packages) == 0, "No packages found.", PackageList(packages))
}

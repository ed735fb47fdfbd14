package content

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/internal/cli/output"
	"github.com/spf13/cobra"
)

var usageBrief bool

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show storage usage",
	Long: `Show the tenant's storage usage against its package limit.

Examples:
  # Full storage report
  signcastctl content usage

  # Compact summary
  signcastctl content usage --brief

  # As JSON
  signcastctl content usage -o json`,
	RunE: runUsage,
}

func init() {
	usageCmd.Flags().BoolVar(&usageBrief, "brief", false, "Show the compact summary instead of the full report")
}

func runUsage(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	tenantID := cmdutil.GetTenantID()
	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	if usageBrief {
		info, err := client.GetStorageInfo(tenantID)
		if err != nil {
			return fmt.Errorf("failed to get storage info: %w", err)
		}
		if format != output.FormatTable {
			return cmdutil.PrintResource(os.Stdout, info, nil)
		}
		fmt.Printf("%s / %s used (%.1f%%)\n",
			cmdutil.FormatGB(info.UsedStorage), cmdutil.FormatGB(info.StorageLimit), info.UsagePercentage)
		return nil
	}

	usage, err := client.GetStorageUsage(tenantID)
	if err != nil {
		return fmt.Errorf("failed to get storage usage: %w", err)
	}
	if format != output.FormatTable {
		return cmdutil.PrintResource(os.Stdout, usage, nil)
	}

	s := usage.Storage
	if err := output.SimpleTable(os.Stdout, [][2]string{
		{"Used", fmt.Sprintf("%s (%d bytes)", cmdutil.FormatGB(s.UsedGB), s.UsedBytes)},
		{"Limit", cmdutil.FormatGB(s.LimitGB)},
		{"Available", cmdutil.FormatGB(s.AvailableGB)},
		{"Usage", fmt.Sprintf("%.1f%%", s.UsagePercentage)},
		{"Over limit", cmdutil.BoolToYesNo(s.IsOverLimit)},
	}); err != nil {
		return err
	}
	if s.IsOverLimit {
		fmt.Println("\nWARNING: tenant is over its storage limit")
	}
	return nil
}

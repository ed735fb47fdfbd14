package commands

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/internal/cli/output"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	Long: `Display information about the currently authenticated user.

Examples:
  # Show current user
  signcastctl whoami

  # As JSON
  signcastctl whoami -o json`,
	RunE: runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	user, err := client.GetCurrentUser()
	if err != nil {
		return fmt.Errorf("failed to fetch current user: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintResource(os.Stdout, user, nil)
	}

	tenant := "-"
	if user.TenantID != nil {
		tenant = *user.TenantID
	}
	return output.SimpleTable(os.Stdout, [][2]string{
		{"Username", user.Username},
		{"Role", user.Role},
		{"Email", cmdutil.EmptyOr(user.Email, "-")},
		{"Tenant", tenant},
		{"Enabled", cmdutil.BoolToYesNo(user.Enabled)},
	})
}

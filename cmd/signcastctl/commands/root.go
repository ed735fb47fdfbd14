// Package commands implements the CLI commands for signcastctl client.
package commands

import (
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	contentcmd "github.com/signcast/signcast/cmd/signcastctl/commands/content"
	ctxcmd "github.com/signcast/signcast/cmd/signcastctl/commands/context"
	devicecmd "github.com/signcast/signcast/cmd/signcastctl/commands/device"
	paymentcmd "github.com/signcast/signcast/cmd/signcastctl/commands/payment"
	pkgcmd "github.com/signcast/signcast/cmd/signcastctl/commands/pkg"
	tenantcmd "github.com/signcast/signcast/cmd/signcastctl/commands/tenant"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "signcastctl",
	Short: "SignCast Control - Remote management client",
	Long: `signcastctl is the command-line client for managing SignCast servers remotely.

Use this tool to manage tenants, subscription packages, media contents,
player devices and payments through the SignCast REST API.

Use "signcastctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Sync flags to cmdutil.Flags for subcommands
		cmdutil.Flags.ServerURL, _ = cmd.Flags().GetString("server")
		cmdutil.Flags.Token, _ = cmd.Flags().GetString("token")
		cmdutil.Flags.TenantID, _ = cmd.Flags().GetString("tenant")
		cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
		cmdutil.Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
		cmdutil.Flags.Verbose, _ = cmd.Flags().GetBool("verbose")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().String("server", "", "Server URL (overrides stored credential)")
	rootCmd.PersistentFlags().String("token", "", "Bearer token (overrides stored credential)")
	rootCmd.PersistentFlags().String("tenant", "", "Tenant ID to act on (admins only; defaults to the context tenant)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(ctxcmd.Cmd)
	rootCmd.AddCommand(tenantcmd.Cmd)
	rootCmd.AddCommand(pkgcmd.Cmd)
	rootCmd.AddCommand(contentcmd.Cmd)
	rootCmd.AddCommand(devicecmd.Cmd)
	rootCmd.AddCommand(paymentcmd.Cmd)
	rootCmd.AddCommand(completionCmd)

	// Hide the default completion command (we provide our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// Exit prints an error and exits with code 1.
func Exit(format string, args ...any) {
	PrintErr(format, args...)
	os.Exit(1)
}

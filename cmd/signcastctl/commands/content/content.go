// Package content implements content management commands for signcastctl.
package content

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for content management.
var Cmd = &cobra.Command{
	Use:   "content",
	Short: "Content management",
	Long: `Manage media content on the SignCast server.

Uploads count against the tenant's storage limit. When an upload would
push the tenant over its limit the server evicts the oldest content
first; uploads larger than the limit itself are rejected outright.

Examples:
  # Upload a video
  signcastctl content upload promo.mp4

  # Check storage usage
  signcastctl content usage

  # List content
  signcastctl content list`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(uploadCmd)
	Cmd.AddCommand(downloadCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(usageCmd)
}

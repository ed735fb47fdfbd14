package content

import (
	"fmt"
	"io"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/spf13/cobra"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <content-id>",
	Short: "Download a content file",
	Long: `Download a content file to the local filesystem.

Examples:
  # Download under the stored filename
  signcastctl content download 7f3c9a1e-...

  # Download to a specific path
  signcastctl content download 7f3c9a1e-... -O /tmp/promo.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output-file", "O", "", "Path to write the file to (defaults to the stored filename)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	id := args[0]
	dest := downloadOutput
	if dest == "" {
		c, err := client.GetContent(id)
		if err != nil {
			return fmt.Errorf("failed to get content: %w", err)
		}
		dest = c.Filename
	}

	body, err := client.DownloadContent(id)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer body.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	n, err := io.Copy(out, body)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	fmt.Printf("Downloaded %s (%d bytes)\n", dest, n)
	return nil
}

package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/internal/cli/output"
	"github.com/signcast/signcast/pkg/apiclient"
	"github.com/spf13/cobra"
)

var uploadName string

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a content file",
	Long: `Upload a media file as tenant content.

If the upload pushes the tenant over its storage limit, the server
evicts the tenant's oldest content to make room and reports what was
deleted. Files larger than the tenant's entire storage limit are
rejected before any bytes are transferred.

Examples:
  # Upload a file
  signcastctl content upload promo.mp4

  # Upload under a different name
  signcastctl content upload ./renders/final-v3.mp4 --name promo.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "Filename to store the content under (defaults to the file's base name)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	filename := uploadName
	if filename == "" {
		filename = filepath.Base(path)
	}

	result, err := client.UploadContent(cmdutil.GetTenantID(), filename, f)
	if err != nil {
		var quotaErr *apiclient.QuotaExceededError
		if errors.As(err, &quotaErr) {
			fmt.Fprintf(os.Stderr, "Upload rejected: %s\n", quotaErr.Message)
			if quotaErr.CleanupPerformed {
				fmt.Fprintf(os.Stderr, "Cleanup deleted %d files (freed %.2f GB) but the file still does not fit.\n",
					quotaErr.FilesDeleted, quotaErr.FreedSpace)
			}
			cmd.SilenceErrors = true
			return err
		}
		return fmt.Errorf("upload failed: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintResource(os.Stdout, result, nil)
	}

	fmt.Printf("Uploaded '%s' (%s, ID: %s)\n",
		result.Content.Filename, cmdutil.FormatGB(result.Content.SizeGB), result.Content.ID)
	cmdutil.PrintStorageCleanup(result.StorageCleanup)
	return nil
}

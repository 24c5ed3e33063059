package cmd

import (
	"fmt"
	"log"

	"dropcord/internal/app"
	"dropcord/internal/processor"
	"dropcord/internal/reporter"
	"dropcord/internal/transport"
	"dropcord/internal/ui"

	"github.com/spf13/cobra"
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload FILE...",
	Short: "Upload files to the Discord webhook",
	Long: `Upload one or more files to the configured Discord webhook. This will:

1. Read every file (files over --max-size are rejected up front)
2. Hash each file and correct its extension from its contents
3. Post the files one at a time, in the order given
4. Print the attachment URL of every file

If a file fails, the remaining files are skipped and only the error is
reported for the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Printf("Starting upload of %d file(s)", len(args))
		return runUploaderApp(args)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

// runUploaderApp creates and runs the uploader application
func runUploaderApp(filePaths []string) error {
	ctx := createContext()
	tracker := reporter.NewStatusTracker()
	consoleUI := ui.NewConsoleUI()

	uploaderApp := app.NewUploaderApp(
		transport.NewWebhookClient(cfg.Webhook.URL),
		processor.NewFileService(cfg.Upload.MaxFileSize),
		reporter.Multi(tracker, ui.NewProgressUI()),
	)

	result, err := uploaderApp.Run(ctx, &app.UploaderOptions{FilePaths: filePaths})
	if err != nil {
		return err
	}

	files := tracker.Snapshot()
	consoleUI.ShowBatchSummary(files, result)
	if result.Failed() {
		consoleUI.ShowNotUploaded(files, tracker.Retryable())
		return fmt.Errorf("upload failed")
	}
	return nil
}

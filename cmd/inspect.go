package cmd

import (
	"dropcord/internal/processor"
	"dropcord/internal/ui"

	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE...",
	Short: "Show the hash, detected type and upload name of files",
	Long: `Run only the ingestion step on each file: compute its SHA-256, detect its
type from its contents and show the name it would be uploaded under.
Nothing is sent to the webhook.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileService := processor.NewFileService(0)
		consoleUI := ui.NewConsoleUIWithWriter(cmd.OutOrStdout())

		for _, path := range args {
			file, err := fileService.ReadFileRecord(path)
			if err != nil {
				return err
			}
			consoleUI.ShowInspection(file, processor.Process(file.Data, file.Name))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

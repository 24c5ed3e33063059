package ui

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"dropcord/internal/processor"
	"dropcord/internal/reporter"
	"dropcord/pkg/types"
	"dropcord/pkg/utils"
)

// ConsoleUI prints user-facing messages and batch summaries
type ConsoleUI struct {
	out io.Writer
}

// NewConsoleUI creates a console UI writing to stdout
func NewConsoleUI() *ConsoleUI {
	return &ConsoleUI{out: os.Stdout}
}

// NewConsoleUIWithWriter creates a console UI writing to w
func NewConsoleUIWithWriter(w io.Writer) *ConsoleUI {
	return &ConsoleUI{out: w}
}

// ShowMessage displays a message to the user
func (c *ConsoleUI) ShowMessage(message string) {
	log.Printf("%s\n", message)
}

// ShowBatchSummary prints one line per tracked file followed by the batch
// result. On failure only the error is reported as the batch result.
func (c *ConsoleUI) ShowBatchSummary(files []reporter.FileStatus, result types.BatchResult) {
	fmt.Fprintf(c.out, "=============================================\n")
	for _, f := range files {
		switch f.State {
		case reporter.StateSuccess:
			fmt.Fprintf(c.out, "+ %s: %s\n", f.Name, f.URL)
		case reporter.StateError:
			fmt.Fprintf(c.out, "x %s: %s\n", f.Name, f.Error)
		default:
			fmt.Fprintf(c.out, "- %s: %s\n", f.Name, f.State)
		}
	}
	fmt.Fprintf(c.out, "=============================================\n")
	if result.Failed() {
		fmt.Fprintf(c.out, "Upload failed: %s\n", result.Error)
		return
	}
	fmt.Fprintf(c.out, "Uploaded %d file(s):\n", len(result.URLs))
	for _, url := range result.URLs {
		fmt.Fprintln(c.out, url)
	}
}

// ShowNotUploaded lists the files at the given indexes, the ones a stopped
// batch left failed or never tried.
func (c *ConsoleUI) ShowNotUploaded(files []reporter.FileStatus, indexes []int) {
	if len(indexes) == 0 {
		return
	}
	names := make([]string, 0, len(indexes))
	for _, i := range indexes {
		if i >= 0 && i < len(files) {
			names = append(names, files[i].Name)
		}
	}
	fmt.Fprintf(c.out, "Not uploaded (%d): %s\n", len(names), strings.Join(names, ", "))
}

// ShowInspection prints what ingestion decided for a file
func (c *ConsoleUI) ShowInspection(file types.FileRecord, result processor.Result) {
	mimeType := result.FileType.MimeType
	if !result.Detected {
		mimeType = "unknown"
	}
	fmt.Fprintf(c.out, "%s\n", file.Name)
	fmt.Fprintf(c.out, "+ Size: %s\n", utils.FormatFileSize(file.Size()))
	fmt.Fprintf(c.out, "+ SHA-256: %s\n", result.Hash)
	fmt.Fprintf(c.out, "+ Type: %s\n", mimeType)
	fmt.Fprintf(c.out, "+ Upload name: %s\n", result.Filename)
}

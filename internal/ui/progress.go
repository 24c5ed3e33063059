package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"dropcord/pkg/types"
	"dropcord/pkg/utils"

	"github.com/schollz/progressbar/v3"
)

// ProgressUI shows a progress bar over the files of a batch
type ProgressUI struct {
	bar    *progressbar.ProgressBar
	writer io.Writer
}

// NewProgressUI creates a new progress UI writing to stderr
func NewProgressUI() *ProgressUI {
	return &ProgressUI{writer: os.Stderr}
}

// NewProgressUIWithWriter creates a progress UI writing to w
func NewProgressUIWithWriter(w io.Writer) *ProgressUI {
	return &ProgressUI{writer: w}
}

// startProgress initializes the progress bar for a batch of total files
func (p *ProgressUI) startProgress(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Uploading"),
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(false),
	)
}

// OnBatchStart creates a fresh bar sized to the batch
func (p *ProgressUI) OnBatchStart(files []types.FileRecord) {
	p.startProgress(len(files))
}

// OnFileStart describes the file about to be uploaded
func (p *ProgressUI) OnFileStart(index, total int, file types.FileRecord) {
	if p.bar == nil {
		p.startProgress(total)
	}
	p.bar.Describe(fmt.Sprintf("Uploading %s (%s)", file.Name, utils.FormatFileSize(file.Size())))
}

// OnFileDone advances the bar, or stops it on failure
func (p *ProgressUI) OnFileDone(index, total int, outcome types.Outcome) {
	if p.bar == nil {
		return
	}
	if !outcome.OK() {
		p.bar.Describe(fmt.Sprintf("Failed %s", outcome.Name))
		_ = p.bar.Exit()
		return
	}
	_ = p.bar.Add(1)
	if index == total-1 {
		_ = p.bar.Finish()
	}
}

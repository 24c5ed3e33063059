package app

import (
	"context"

	"dropcord/pkg/types"
)

// BatchUploader uploads a list of files and reports the batch-level result
type BatchUploader interface {
	UploadBatch(ctx context.Context, files []types.FileRecord) types.BatchResult
}

// Reporter receives per-file status changes while a batch runs
type Reporter interface {
	// OnBatchStart is called once with every file of the batch, all pending
	OnBatchStart(files []types.FileRecord)
	// OnFileStart is called before a file is ingested and relayed
	OnFileStart(index, total int, file types.FileRecord)
	// OnFileDone is called once per started file with its outcome
	OnFileDone(index, total int, outcome types.Outcome)
}

type nopReporter struct{}

func (nopReporter) OnBatchStart([]types.FileRecord)        {}
func (nopReporter) OnFileStart(int, int, types.FileRecord) {}
func (nopReporter) OnFileDone(int, int, types.Outcome)     {}

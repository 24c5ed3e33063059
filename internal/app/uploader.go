package app

import (
	"context"
	"fmt"
	"log"

	"dropcord/internal/processor"
	"dropcord/internal/transport"
	"dropcord/pkg/types"
)

// UploaderOptions configures the CLI batch run
type UploaderOptions struct {
	FilePaths []string // Required: files to upload, in order
}

// UploaderApp ingests files and relays them to the webhook one at a time
type UploaderApp struct {
	uploader    transport.Uploader
	fileService *processor.FileService
	reporter    Reporter
}

// NewUploaderApp creates a new uploader application. reporter may be nil.
func NewUploaderApp(uploader transport.Uploader, fileService *processor.FileService, reporter Reporter) *UploaderApp {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &UploaderApp{
		uploader:    uploader,
		fileService: fileService,
		reporter:    reporter,
	}
}

// ProcessFile runs the ingestion and relay pipeline for a single file. A
// result is returned only when both hashing and the upload succeeded.
func (a *UploaderApp) ProcessFile(ctx context.Context, file types.FileRecord) (*types.ProcessedResult, error) {
	ingested := processor.Process(file.Data, file.Name)
	if ingested.Detected {
		log.Printf("Detected %s for %s, uploading as %s", ingested.FileType.MimeType, file.Name, ingested.Filename)
	}

	url, err := a.uploader.Upload(ctx, file.Data, ingested.Filename)
	if err != nil {
		return nil, fmt.Errorf("Discord upload failed: %w", err)
	}

	return &types.ProcessedResult{
		OriginalName: file.Name,
		ContentHash:  ingested.Hash,
		ResolvedURL:  url,
	}, nil
}

// UploadBatch processes files strictly in order. The first failure stops the
// batch: the remaining files are skipped and the result carries only the
// error, without the URLs of files already uploaded.
func (a *UploaderApp) UploadBatch(ctx context.Context, files []types.FileRecord) types.BatchResult {
	urls := make([]string, 0, len(files))
	a.reporter.OnBatchStart(files)

	for i, file := range files {
		a.reporter.OnFileStart(i, len(files), file)

		result, err := a.ProcessFile(ctx, file)
		if err != nil {
			log.Printf("Error processing file %s (%s error): %v", file.Name, transport.KindOf(err), err)
			a.reporter.OnFileDone(i, len(files), types.Failure(file.Name, err.Error()))
			return types.BatchResult{
				Error: fmt.Sprintf("Error processing file %s: %v", file.Name, err),
			}
		}

		a.reporter.OnFileDone(i, len(files), types.Success(file.Name, result.ResolvedURL))
		urls = append(urls, result.ResolvedURL)
	}

	return types.BatchResult{URLs: urls}
}

// Run loads the files named in opts from disk and uploads them as one batch
func (a *UploaderApp) Run(ctx context.Context, opts *UploaderOptions) (types.BatchResult, error) {
	if len(opts.FilePaths) == 0 {
		return types.BatchResult{}, fmt.Errorf("at least one file is required")
	}

	files, err := a.fileService.ReadFileRecords(opts.FilePaths)
	if err != nil {
		return types.BatchResult{}, fmt.Errorf("failed to load files: %w", err)
	}

	return a.UploadBatch(ctx, files), nil
}

package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"dropcord/internal/processor"
	"dropcord/internal/transport"
	"dropcord/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	failOn map[string]error
	calls  []string
}

func (f *fakeUploader) Upload(_ context.Context, _ []byte, filename string) (string, error) {
	f.calls = append(f.calls, filename)
	if err, ok := f.failOn[filename]; ok {
		return "", err
	}
	return "https://cdn.example/" + filename, nil
}

type recordingReporter struct {
	batch    int
	started  []string
	outcomes []types.Outcome
}

func (r *recordingReporter) OnBatchStart(files []types.FileRecord) {
	r.batch = len(files)
}

func (r *recordingReporter) OnFileStart(_, _ int, file types.FileRecord) {
	r.started = append(r.started, file.Name)
}

func (r *recordingReporter) OnFileDone(_, _ int, outcome types.Outcome) {
	r.outcomes = append(r.outcomes, outcome)
}

var png = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func records(names ...string) []types.FileRecord {
	files := make([]types.FileRecord, 0, len(names))
	for _, n := range names {
		files = append(files, types.FileRecord{Data: []byte("content of " + n), Name: n})
	}
	return files
}

func TestUploadBatchAllSucceed(t *testing.T) {
	uploader := &fakeUploader{}
	reporter := &recordingReporter{}
	a := NewUploaderApp(uploader, nil, reporter)

	result := a.UploadBatch(context.Background(), records("a.txt", "b.txt", "c.txt"))

	assert.False(t, result.Failed())
	assert.Equal(t, []string{
		"https://cdn.example/a.txt",
		"https://cdn.example/b.txt",
		"https://cdn.example/c.txt",
	}, result.URLs)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, uploader.calls)
	require.Len(t, reporter.outcomes, 3)
	for _, o := range reporter.outcomes {
		assert.True(t, o.OK())
	}
}

func TestUploadBatchStopsAtFirstFailure(t *testing.T) {
	uploader := &fakeUploader{failOn: map[string]error{
		"b.txt": fmt.Errorf("failed to upload to Discord: 500 Internal Server Error - oops"),
	}}
	reporter := &recordingReporter{}
	a := NewUploaderApp(uploader, nil, reporter)

	result := a.UploadBatch(context.Background(), records("a.txt", "b.txt", "c.txt"))

	assert.True(t, result.Failed())
	assert.Nil(t, result.URLs, "successes before the failure are not part of the result")
	assert.Contains(t, result.Error, "b.txt")
	assert.Contains(t, result.Error, "Discord upload failed")
	assert.Contains(t, result.Error, "500")
	assert.Equal(t, []string{"a.txt", "b.txt"}, uploader.calls, "c.txt must not be attempted")

	assert.Equal(t, 3, reporter.batch)
	assert.Equal(t, []string{"a.txt", "b.txt"}, reporter.started)
	require.Len(t, reporter.outcomes, 2)
	assert.True(t, reporter.outcomes[0].OK())
	assert.Equal(t, types.OutcomeFailure, reporter.outcomes[1].Status)
}

func TestUploadBatchConfigurationErrorIsFatal(t *testing.T) {
	a := NewUploaderApp(transport.NewWebhookClient(""), nil, nil)

	result := a.UploadBatch(context.Background(), records("a.txt", "b.txt"))

	assert.True(t, result.Failed())
	assert.Contains(t, result.Error, "Error processing file a.txt")
	assert.Contains(t, result.Error, "not defined")
}

func TestProcessFileRenamesBeforeUpload(t *testing.T) {
	uploader := &fakeUploader{}
	a := NewUploaderApp(uploader, nil, nil)

	result, err := a.ProcessFile(context.Background(), types.FileRecord{Data: png, Name: "shot.txt"})

	require.NoError(t, err)
	assert.Equal(t, []string{"shot.png"}, uploader.calls)
	assert.Equal(t, "shot.txt", result.OriginalName)
	assert.Equal(t, "https://cdn.example/shot.png", result.ResolvedURL)
	assert.Len(t, result.ContentHash, 64)
}

func TestProcessFileFailureYieldsNoResult(t *testing.T) {
	uploader := &fakeUploader{failOn: map[string]error{"x.bin": fmt.Errorf("nope")}}
	a := NewUploaderApp(uploader, nil, nil)

	result, err := a.ProcessFile(context.Background(), types.FileRecord{Data: []byte("x"), Name: "x.bin"})

	assert.Nil(t, result)
	assert.EqualError(t, err, "Discord upload failed: nope")
}

func TestRunLoadsFilesFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.dat")
	require.NoError(t, os.WriteFile(path, png, 0o644))

	uploader := &fakeUploader{}
	a := NewUploaderApp(uploader, processor.NewFileService(1024), nil)

	result, err := a.Run(context.Background(), &UploaderOptions{FilePaths: []string{path}})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example/pic.png"}, result.URLs)

	_, err = a.Run(context.Background(), &UploaderOptions{})
	assert.Error(t, err)

	_, err = a.Run(context.Background(), &UploaderOptions{FilePaths: []string{filepath.Join(dir, "missing")}})
	assert.ErrorContains(t, err, "does not exist")
}

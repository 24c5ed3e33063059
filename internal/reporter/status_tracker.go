package reporter

import (
	"sync"

	"dropcord/internal/app"
	"dropcord/pkg/types"
)

// State is the upload state of one file
type State string

const (
	StatePending   State = "pending"
	StateUploading State = "uploading"
	StateSuccess   State = "success"
	StateError     State = "error"
)

// FileStatus is a snapshot of one tracked file
type FileStatus struct {
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	State State  `json:"status"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

// StatusTracker follows every file of a batch through
// pending -> uploading -> success | error.
// Files never started because the batch stopped early stay pending.
type StatusTracker struct {
	mu    sync.Mutex
	files []FileStatus
}

// NewStatusTracker creates an empty tracker
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{}
}

// OnBatchStart resets the tracker to the files of the batch, all pending
func (t *StatusTracker) OnBatchStart(files []types.FileRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.files = make([]FileStatus, len(files))
	for i, f := range files {
		t.files[i] = FileStatus{Name: f.Name, Size: f.Size(), State: StatePending}
	}
}

// OnFileStart marks the file as uploading and clears any previous error
func (t *StatusTracker) OnFileStart(index, _ int, file types.FileRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for len(t.files) <= index {
		t.files = append(t.files, FileStatus{State: StatePending})
	}
	t.files[index] = FileStatus{Name: file.Name, Size: file.Size(), State: StateUploading}
}

// OnFileDone records the outcome of an uploading file
func (t *StatusTracker) OnFileDone(index, _ int, outcome types.Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index >= len(t.files) || t.files[index].State != StateUploading {
		return
	}
	if outcome.OK() {
		t.files[index].State = StateSuccess
		t.files[index].URL = outcome.URL
		return
	}
	t.files[index].State = StateError
	t.files[index].Error = outcome.Message
}

// Snapshot returns a copy of the current statuses in batch order
func (t *StatusTracker) Snapshot() []FileStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]FileStatus, len(t.files))
	copy(out, t.files)
	return out
}

// Retryable returns the indexes of files that are pending or failed
func (t *StatusTracker) Retryable() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	var idx []int
	for i, f := range t.files {
		if f.State == StatePending || f.State == StateError {
			idx = append(idx, i)
		}
	}
	return idx
}

type multiReporter struct {
	reporters []app.Reporter
}

// Multi fans every event out to each non-nil reporter in order
func Multi(reporters ...app.Reporter) app.Reporter {
	flattened := make([]app.Reporter, 0, len(reporters))
	for _, r := range reporters {
		if r == nil {
			continue
		}
		if m, ok := r.(*multiReporter); ok {
			flattened = append(flattened, m.reporters...)
			continue
		}
		flattened = append(flattened, r)
	}
	return &multiReporter{reporters: flattened}
}

func (m *multiReporter) OnBatchStart(files []types.FileRecord) {
	for _, r := range m.reporters {
		r.OnBatchStart(files)
	}
}

func (m *multiReporter) OnFileStart(index, total int, file types.FileRecord) {
	for _, r := range m.reporters {
		r.OnFileStart(index, total, file)
	}
}

func (m *multiReporter) OnFileDone(index, total int, outcome types.Outcome) {
	for _, r := range m.reporters {
		r.OnFileDone(index, total, outcome)
	}
}

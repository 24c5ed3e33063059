package types

// FileRecord is a file selected by the user, read fully into memory
type FileRecord struct {
	Data []byte // Raw file contents
	Name string // Original filename as supplied by the user
}

// Size returns the length of the file contents in bytes
func (f FileRecord) Size() int64 {
	return int64(len(f.Data))
}

// ProcessedResult is produced once per file whose hash and upload both succeeded
type ProcessedResult struct {
	OriginalName string `json:"file"`
	ContentHash  string `json:"hash"`
	ResolvedURL  string `json:"fileUrl"`
}

// OutcomeStatus tags an Outcome
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFailure OutcomeStatus = "error"
)

// Outcome is the per-file result of one pipeline run
type Outcome struct {
	Status  OutcomeStatus `json:"status"`
	Name    string        `json:"name"`
	URL     string        `json:"url,omitempty"`
	Message string        `json:"message,omitempty"`
}

// Success builds a successful outcome
func Success(name, url string) Outcome {
	return Outcome{Status: OutcomeSuccess, Name: name, URL: url}
}

// Failure builds a failed outcome
func Failure(name, message string) Outcome {
	return Outcome{Status: OutcomeFailure, Name: name, Message: message}
}

// OK reports whether the outcome is a success
func (o Outcome) OK() bool {
	return o.Status == OutcomeSuccess
}

// BatchResult is what a caller gets back from a batch: either every URL in
// input order, or a single error naming the failing file.
type BatchResult struct {
	URLs  []string `json:"urls,omitempty"`
	Error string   `json:"error,omitempty"`
}

// Failed reports whether the batch stopped on an error
func (b BatchResult) Failed() bool {
	return b.Error != ""
}

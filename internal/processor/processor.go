package processor

import "regexp"

// extPattern matches the last extension of a filename, like the upload widget
// strips it: a dot followed by anything but dots and slashes, at the end.
var extPattern = regexp.MustCompile(`\.[^/.]+$`)

// Result is the output of ingesting one file
type Result struct {
	Hash     string   // SHA-256 of the contents, lowercase hex
	Filename string   // Filename with its extension matched to the sniffed type
	FileType FileType // Zero value when the type was not recognised
	Detected bool
}

// Process hashes data and normalizes filename to the type found in its bytes.
// The supplied name is never used to decide the type. When no signature
// matches, the filename is returned unchanged.
func Process(data []byte, filename string) Result {
	result := Result{
		Hash:     calculateChecksum(data),
		Filename: filename,
	}

	fileType, ok := DetectFileType(data)
	if !ok {
		return result
	}

	result.FileType = fileType
	result.Detected = true
	result.Filename = NormalizeFilename(filename, fileType)
	return result
}

// NormalizeFilename replaces the last extension of filename with the
// canonical extension of fileType, keeping the base name.
func NormalizeFilename(filename string, fileType FileType) string {
	return extPattern.ReplaceAllLiteralString(filename, "") + "." + fileType.Extension
}

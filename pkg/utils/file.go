package utils

import (
	"fmt"
	"os"
)

// ResolveSourcePath checks that path names a readable regular file no larger
// than maxSize bytes. A maxSize <= 0 disables the size check.
func ResolveSourcePath(path string, maxSize int64) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file does not exist: %s", path)
		}
		return nil, fmt.Errorf("cannot access file '%s': %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("'%s' is a directory, please specify a file", path)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, fmt.Errorf("file '%s' is %s, maximum file size is %s",
			path, FormatFileSize(info.Size()), FormatFileSize(maxSize))
	}
	return info, nil
}

// FormatFileSize formats file size in human readable format
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

package processor

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"dropcord/pkg/types"
	"dropcord/pkg/utils"
)

// FileService loads user-selected files from disk
type FileService struct {
	maxFileSize int64
}

// NewFileService creates a new file service that rejects files larger than
// maxFileSize bytes. A maxFileSize <= 0 accepts any size.
func NewFileService(maxFileSize int64) *FileService {
	return &FileService{maxFileSize: maxFileSize}
}

// ReadFileRecord reads the whole file at filePath into memory
func (f *FileService) ReadFileRecord(filePath string) (types.FileRecord, error) {
	info, err := utils.ResolveSourcePath(filePath, f.maxFileSize)
	if err != nil {
		return types.FileRecord{}, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return types.FileRecord{}, fmt.Errorf("failed to read file: %w", err)
	}

	log.Printf("File loaded: %s, size: %d bytes (%s)",
		filePath, info.Size(), utils.FormatFileSize(info.Size()))

	return types.FileRecord{
		Data: data,
		Name: filepath.Base(filePath),
	}, nil
}

// ReadFileRecords reads every path in order and stops at the first failure
func (f *FileService) ReadFileRecords(filePaths []string) ([]types.FileRecord, error) {
	records := make([]types.FileRecord, 0, len(filePaths))
	for _, p := range filePaths {
		record, err := f.ReadFileRecord(p)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// calculateChecksum calculates the SHA-256 checksum of data as lowercase hex
func calculateChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

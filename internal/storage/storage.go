package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ObjectStore holds uploaded document files.
type ObjectStore interface {
	// Upload stores the file at localPath under key.
	Upload(ctx context.Context, localPath, key string) error
	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
	// URLFor returns the retrieval URL of key. It does not check existence.
	URLFor(key string) string
}

const (
	// DocumentsPrefix is the first segment of every document key.
	DocumentsPrefix = "Documents"
	// FileTypePDF is the suffix of document keys.
	FileTypePDF = "pdf"

	missingData = "MissingData"
)

var (
	// ErrNoDocumentFile is returned when a document directory holds no file.
	ErrNoDocumentFile = errors.New("no document file")
	// ErrManyDocumentFiles is returned when a document directory holds more than one file.
	ErrManyDocumentFiles = errors.New("more than one document file")
)

var unsafeRun = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Key joins segments into an object key ending in fileType. Runs of
// characters other than ASCII letters and digits become "-" so the key never
// needs URL encoding; nil or empty segments become MissingData.
func Key(segments []*string, fileType string) string {
	escaped := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == nil {
			escaped = append(escaped, missingData)
			continue
		}
		segmentKey := strings.Trim(unsafeRun.ReplaceAllString(*segment, "-"), "-")
		if segmentKey == "" {
			segmentKey = missingData
		}
		escaped = append(escaped, segmentKey)
	}
	return strings.Join(escaped, "/") + "." + fileType
}

// DocumentKey is Documents/{source}/{year}/{authorityName}/{documentName}.pdf.
func DocumentKey(sourceID, year, authorityName, documentName *string) string {
	prefix := DocumentsPrefix
	return Key([]*string{&prefix, sourceID, year, authorityName, documentName}, FileTypePDF)
}

// DocumentFile returns the single file in <dir>/<serial>. A missing directory
// counts as an empty one.
func DocumentFile(dir, serial string) (string, error) {
	documentDir := filepath.Join(dir, strings.TrimSpace(serial))

	entries, err := os.ReadDir(documentDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to read document directory %s: %w", documentDir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, filepath.Join(documentDir, entry.Name()))
		}
	}

	switch len(files) {
	case 0:
		return "", ErrNoDocumentFile
	case 1:
		return files[0], nil
	default:
		return "", fmt.Errorf("%w: %d", ErrManyDocumentFiles, len(files))
	}
}

package client

import (
	"fmt"
	"os"
	"path/filepath"

	"hiremind-backend/internal/generate"
)

// DownloadName is the file name offered for saving content of type t.
func DownloadName(t generate.Type) string {
	switch t {
	case generate.TypeResume:
		return "resume.txt"
	case generate.TypeCoverLetter:
		return "cover-letter.txt"
	default:
		return "document.txt"
	}
}

// SaveDownload writes content as plain text into dir and returns the path.
func SaveDownload(dir, content string, t generate.Type) (string, error) {
	if content == "" {
		return "", fmt.Errorf("nothing to save")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, DownloadName(t))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

package client

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"hiremind-backend/internal/generate"
)

func TestDownloadName(t *testing.T) {
	cases := map[generate.Type]string{
		generate.TypeResume:      "resume.txt",
		generate.TypeCoverLetter: "cover-letter.txt",
		"":                       "document.txt",
	}
	for typ, want := range cases {
		if got := DownloadName(typ); got != want {
			t.Fatalf("DownloadName(%q) = %q, want %q", typ, got, want)
		}
	}
}

func TestSaveDownload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := SaveDownload(dir, "Dear team", generate.TypeCoverLetter)
	if err != nil {
		t.Fatalf("SaveDownload: %v", err)
	}
	if filepath.Base(path) != "cover-letter.txt" {
		t.Fatalf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "Dear team" {
		t.Fatalf("unexpected file contents %q err=%v", data, err)
	}
	if _, err := SaveDownload(dir, "", generate.TypeResume); err == nil {
		t.Fatalf("expected error for empty content")
	}
}

func TestConsoleNotifier(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf)
	n.Success(MsgResumeGenerated)
	n.Error(MsgUnreachable)

	out := buf.String()
	if !strings.Contains(out, "✔ "+MsgResumeGenerated) || !strings.Contains(out, "✖ "+MsgUnreachable) {
		t.Fatalf("unexpected output %q", out)
	}
}

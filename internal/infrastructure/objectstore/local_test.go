package objectstore

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"resume.pdf", "resume.pdf"},
		{"my resume (final).pdf", "my_resume__final_.pdf"},
		{"../../etc/passwd", "passwd"},
		{"résumé.pdf", "r_sum_.pdf"},
		{"", "resume"},
	}
	for _, c := range cases {
		if got := SanitizeFilename(c.in); got != c.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStoreWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewLocalStore(dir, "https://files.example.com/resumes/", logger)
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}
	store.now = func() time.Time { return time.UnixMilli(1700000000000) }

	url, err := store.Store(context.Background(), "AB12CD34", "my resume.pdf", 4, bytes.NewReader([]byte("data")))
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	want := "https://files.example.com/resumes/AB12CD34/1700000000000_my_resume.pdf"
	if url != want {
		t.Errorf("url = %q, want %q", url, want)
	}

	data, err := os.ReadFile(filepath.Join(dir, "AB12CD34", "1700000000000_my_resume.pdf"))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "data" {
		t.Errorf("stored content = %q", data)
	}
}

func TestStoreRejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewLocalStore(dir, "https://files.example.com", logger)
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	_, err = store.Store(context.Background(), "AB12CD34", "big.pdf", MaxResumeSize+1, strings.NewReader("x"))
	if err == nil {
		t.Fatal("oversized upload accepted")
	}
}

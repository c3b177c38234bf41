// Package objectstore stores uploaded resume files on the local filesystem
// and serves them back over HTTP as public URLs.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MaxResumeSize caps resume uploads at 10 MB.
const MaxResumeSize = 10 << 20

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-]`)

// LocalStore keeps resumes under root/<candidateID>/<timestamp>_<name> and
// returns URLs below baseURL.
type LocalStore struct {
	root    string
	baseURL string
	logger  *slog.Logger
	now     func() time.Time
}

// NewLocalStore creates a local resume store rooted at dir
func NewLocalStore(dir, baseURL string, logger *slog.Logger) (*LocalStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create resume directory: %w", err)
	}
	return &LocalStore{
		root:    dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Store writes the file and returns its public URL. Filenames are sanitized
// and timestamp-prefixed so repeated uploads of the same name never collide.
func (s *LocalStore) Store(ctx context.Context, candidateID, filename string, size int64, r io.Reader) (string, error) {
	if size > MaxResumeSize {
		return "", fmt.Errorf("file exceeds %d bytes", int64(MaxResumeSize))
	}

	safe := SanitizeFilename(filename)
	name := fmt.Sprintf("%d_%s", s.now().UnixMilli(), safe)
	dir := filepath.Join(s.root, candidateID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create candidate directory: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create resume file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(r, MaxResumeSize+1)); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write resume file: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.baseURL, candidateID, name)
	s.logger.Info("resume stored",
		slog.String("candidate_id", candidateID),
		slog.String("path", path),
	)
	return url, nil
}

// Handler serves the stored files for the public URLs Store hands out.
func (s *LocalStore) Handler() http.Handler {
	return http.FileServer(http.Dir(s.root))
}

// SanitizeFilename replaces every character outside [a-zA-Z0-9.-] with an
// underscore.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	safe := unsafeFilenameChars.ReplaceAllString(name, "_")
	if safe == "" || safe == "." || safe == ".." {
		safe = "resume"
	}
	return safe
}

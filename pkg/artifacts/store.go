// Package artifacts persists synthesized audio under collision-resistant
// names inside a publicly servable directory.
package artifacts

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/intervo/intervo/pkg/errorsx"
)

// Store writes one uniquely named file per synthesis call and returns the
// public-relative path. Writes from concurrent calls are independent; the
// UUID name guarantees uniqueness. The store never deletes artifacts on its
// own: retention is the host's explicit Purge call.
type Store struct {
	dir          string
	publicPrefix string
}

func NewStore(dir, publicPrefix string) *Store {
	if publicPrefix == "" {
		publicPrefix = "tts-audio"
	}
	return &Store{dir: dir, publicPrefix: publicPrefix}
}

// Save persists one audio payload and returns its public-relative path.
func (s *Store) Save(audio []byte, ext string) (string, error) {
	if len(audio) == 0 {
		return "", errorsx.New(errorsx.ReasonArtifactWrite, "empty audio payload")
	}
	if ext == "" {
		ext = ".mp3"
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonArtifactWrite)
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), audio, 0o644); err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonArtifactWrite)
	}
	return s.publicPrefix + "/" + name, nil
}

// Purge removes artifacts older than maxAge. Returns deleted count.
func (s *Store) Purge(maxAge time.Duration) (int, error) {
	if s.dir == "" || maxAge <= 0 {
		return 0, nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	var removed int
	var errs error
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		removed++
	}
	return removed, errs
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Store is a local-disk stand-in for the opaque blob store. Blobs live
// under baseDir/<propertyID>/<file> and are addressed by the relative
// key recorded on the image row.
type Store struct {
	logger       *logrus.Logger
	baseDir      string
	publicPrefix string
}

func NewStore(baseDir, publicPrefix string, logger *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Store{
		logger:       logger,
		baseDir:      baseDir,
		publicPrefix: strings.TrimSuffix(publicPrefix, "/"),
	}, nil
}

// Upload is one file handed to SaveBatch.
type Upload struct {
	FileName string
	Data     []byte
}

// ItemResult reports the outcome for a single item of a batch. A
// failed item is reported, never retried, and never rolls back the
// items that succeeded.
type ItemResult struct {
	FileName string `json:"file_name"`
	Key      string `json:"key,omitempty"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SaveBatch writes every upload concurrently and collects per-item
// results. It never returns an error for individual failures; the
// caller inspects the results.
func (s *Store) SaveBatch(propertyID string, uploads []Upload) []ItemResult {
	results := make([]ItemResult, len(uploads))

	var g errgroup.Group
	for i, upload := range uploads {
		i, upload := i, upload
		g.Go(func() error {
			key, err := s.save(propertyID, upload)
			results[i] = ItemResult{FileName: upload.FileName}
			if err != nil {
				s.logger.WithError(err).WithField("file", upload.FileName).Error("Failed to store image")
				results[i].Error = err.Error()
				return nil
			}
			results[i].Key = key
			results[i].URL = s.PublicURL(key)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *Store) save(propertyID string, upload Upload) (string, error) {
	if len(upload.Data) == 0 {
		return "", fmt.Errorf("empty file %q", upload.FileName)
	}
	ext := filepath.Ext(upload.FileName)
	key := filepath.Join(propertyID, uuid.NewString()+ext)

	path := filepath.Join(s.baseDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create property dir: %w", err)
	}
	if err := os.WriteFile(path, upload.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", upload.FileName, err)
	}
	return key, nil
}

// DeleteBatch removes every key concurrently, collecting per-item
// outcomes with the same no-retry, no-rollback semantics as SaveBatch.
func (s *Store) DeleteBatch(keys []string) []ItemResult {
	results := make([]ItemResult, len(keys))

	var g errgroup.Group
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			results[i] = ItemResult{FileName: key, Key: key}
			if err := s.Delete(key); err != nil {
				s.logger.WithError(err).WithField("key", key).Error("Failed to delete image blob")
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Delete removes one blob.
func (s *Store) Delete(key string) error {
	path, err := s.safePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// PublicURL maps a storage key to the URL the frontend uses.
func (s *Store) PublicURL(key string) string {
	return s.publicPrefix + "/" + filepath.ToSlash(key)
}

// safePath rejects keys that would escape the storage root.
func (s *Store) safePath(key string) (string, error) {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.baseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return path, nil
}

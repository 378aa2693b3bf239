// Package storage persists per-frame classification results: a batched
// JSON file store for plain sessions and a PostgreSQL store that also
// indexes pose embeddings for similar-pose lookup.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/poselab/posturewatch/internal/models"
)

const batchSize = 10 // results buffered before a write

// Store persists classification results.
type Store interface {
	// AddResult records a single frame result.
	AddResult(ctx context.Context, result models.FrameResult) error

	// Flush ensures all pending results are saved.
	Flush() error
}

// FileStore batches results and appends them to a JSON file under
// outputDir/<session>/classification_results.json.
type FileStore struct {
	mu        sync.Mutex
	results   []models.FrameResult
	outputDir string
	session   string
}

// NewFileStore creates a file-backed result store for one session.
func NewFileStore(outputDir, session string) *FileStore {
	return &FileStore{
		outputDir: outputDir,
		session:   session,
	}
}

// AddResult adds a result to the batch and flushes once the batch is
// full.
func (s *FileStore) AddResult(_ context.Context, result models.FrameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = append(s.results, result)
	if len(s.results) >= batchSize {
		return s.flush()
	}
	return nil
}

// Flush writes all pending results to disk.
func (s *FileStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush()
}

// Path returns the results file location for this session.
func (s *FileStore) Path() string {
	return filepath.Join(s.outputDir, s.session, "classification_results.json")
}

func (s *FileStore) flush() error {
	if len(s.results) == 0 {
		return nil
	}

	resultsPath := s.Path()

	var existing []models.FrameResult
	if data, err := os.ReadFile(resultsPath); err == nil {
		if err := json.Unmarshal(data, &existing); err != nil {
			return fmt.Errorf("storage: unmarshal existing results: %w", err)
		}
	}
	all := append(existing, s.results...)

	if err := os.MkdirAll(filepath.Dir(resultsPath), 0755); err != nil {
		return fmt.Errorf("storage: create results directory: %w", err)
	}

	file, err := os.Create(resultsPath)
	if err != nil {
		return fmt.Errorf("storage: create results file: %w", err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(all); err != nil {
		return fmt.Errorf("storage: encode results: %w", err)
	}

	s.results = nil
	return nil
}

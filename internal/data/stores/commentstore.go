// Package stores provides the on-disk persistence backends.
package stores

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/colonyops/diffview/internal/core/comments"
	"github.com/colonyops/diffview/pkg/kv"
)

// commentSchemaVersion is written on every save. Version 0 (absent) is
// read as version 1 data; anything newer degrades to an empty list so an
// older binary never misreads a future layout.
const commentSchemaVersion = 1

// commentFile is the root JSON structure stored on disk: one entry per
// file path.
type commentFile struct {
	SchemaVersion int                               `json:"schemaVersion"`
	Files         map[string][]comments.DiffComment `json:"files"`
}

// CommentStore implements comments.Store over a single JSON file. Writes
// are atomic (tmp + rename); concurrent views of the same file are
// last-write-wins. A per-path cache avoids re-reading the file when the
// same diff is re-mounted within a session.
type CommentStore struct {
	path  string
	mu    sync.RWMutex
	cache *kv.Store[string, []comments.DiffComment]
}

var _ comments.Store = (*CommentStore)(nil)

// NewCommentStore creates a comment store backed by the JSON file at path.
func NewCommentStore(path string) *CommentStore {
	return &CommentStore{
		path:  path,
		cache: kv.New[string, []comments.DiffComment](),
	}
}

// Load returns the comments for one file path. A missing or empty store
// file is an empty list; corrupt data is an error the adapter degrades on.
func (s *CommentStore) Load(filePath string) ([]comments.DiffComment, error) {
	if list, ok := s.cache.Get(filePath); ok {
		return append([]comments.DiffComment(nil), list...), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	list := file.Files[filePath]
	s.cache.Set(filePath, list)
	return list, nil
}

// Save writes one file path's comment list back, preserving other paths.
func (s *CommentStore) Save(filePath string, list []comments.DiffComment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		// a corrupt store is rebuilt rather than blocking saves
		file = commentFile{}
	}
	if file.Files == nil {
		file.Files = make(map[string][]comments.DiffComment)
	}

	if len(list) == 0 {
		delete(file.Files, filePath)
	} else {
		file.Files[filePath] = list
	}

	if err := s.save(file); err != nil {
		return err
	}

	s.cache.Set(filePath, append([]comments.DiffComment(nil), list...))
	return nil
}

// Files returns the paths that currently have persisted comments.
func (s *CommentStore) Files() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(file.Files))
	for p := range file.Files {
		paths = append(paths, p)
	}
	return paths, nil
}

// load reads the store file. Missing or empty files are an empty store;
// unknown future schema versions are too.
func (s *CommentStore) load() (commentFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return commentFile{}, nil
		}
		return commentFile{}, fmt.Errorf("read comment store: %w", err)
	}

	if len(data) == 0 {
		return commentFile{}, nil
	}

	var file commentFile
	if err := json.Unmarshal(data, &file); err != nil {
		return commentFile{}, fmt.Errorf("decode comment store: %w", err)
	}

	if file.SchemaVersion > commentSchemaVersion {
		return commentFile{}, nil
	}

	return file, nil
}

// save writes the store file atomically.
func (s *CommentStore) save(file commentFile) error {
	file.SchemaVersion = commentSchemaVersion

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

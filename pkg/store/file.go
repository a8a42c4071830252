package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/A5TEX/HSLU-Module-Master/pkg/student"
)

// FileStore keeps the student record as a JSON document on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store. An empty path defaults to
// ~/.modulemaster/student.json.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not find user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".modulemaster", studentKey+".json")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) SaveStudent(ctx context.Context, rec *student.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("could not create storage directory: %w", err)
	}

	rec.Version = student.SchemaVersion
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize student record: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write student record: %w", err)
	}

	return nil
}

func (s *FileStore) LoadStudent(ctx context.Context) (*student.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read student record: %w", err)
	}

	rec, err := decodeStudent(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode student record: %w", err)
	}
	return rec, nil
}

func (s *FileStore) Close() error {
	return nil
}

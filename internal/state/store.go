// Package state persists the handoff record across the WSL restart boundary.
// This package implements the storage layer for the state file, with atomic
// writes so a crash mid-write can never leave a half-written record that
// Phase 2 might mistake for success.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wslkit/wslkit/internal/constants"
	"github.com/wslkit/wslkit/internal/ctxutil"
	"github.com/wslkit/wslkit/internal/domain"
	wslkiterrors "github.com/wslkit/wslkit/internal/errors"
)

// Directory and file permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store defines the interface for handoff state persistence.
type Store interface {
	// Save serializes the state and writes it atomically to the fixed path,
	// creating the containing directory if needed.
	Save(ctx context.Context, st *domain.HandoffState) error

	// Load reads and deserializes the state. It returns ErrStateNotFound if
	// the file is absent and ErrStateCorrupted if it cannot be parsed; a
	// zero-valued state is never returned silently.
	Load(ctx context.Context) (*domain.HandoffState, error)

	// Delete removes the entire state directory tree. Deleting absent state
	// is not an error.
	Delete(ctx context.Context) error

	// Path returns the state file path this store reads and writes.
	Path() string
}

// FileStore implements Store using the local filesystem.
type FileStore struct {
	tempDir string
}

// NewFileStore creates a FileStore rooted at the given temp directory
// (the per-side state directory, e.g. /tmp/wsl2_automation inside WSL).
func NewFileStore(tempDir string) (*FileStore, error) {
	if tempDir == "" {
		return nil, fmt.Errorf("temp directory %w", wslkiterrors.ErrEmptyValue)
	}
	return &FileStore{tempDir: tempDir}, nil
}

// Path returns the state file path.
func (s *FileStore) Path() string {
	return filepath.Join(s.tempDir, constants.StateFileName)
}

// Save writes the state atomically, creating the state directory if missing.
func (s *FileStore) Save(ctx context.Context, st *domain.HandoffState) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("failed to save state: state %w", wslkiterrors.ErrEmptyValue)
	}

	if err := os.MkdirAll(s.tempDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := atomicWrite(s.Path(), data); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	return nil
}

// Load reads and parses the state file. Absence and corruption are reported
// as distinct sentinel errors so Phase 2 can tell "run phase 1 first" apart
// from "state exists but is damaged".
func (s *FileStore) Load(ctx context.Context) (*domain.HandoffState, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path()) //#nosec G304 -- path is constructed from the configured state directory
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", s.Path(), wslkiterrors.ErrStateNotFound)
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var st domain.HandoffState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %w", wslkiterrors.ErrStateCorrupted, err)
	}

	return &st, nil
}

// Delete removes the state directory tree. Safe to call repeatedly and when
// no state exists.
func (s *FileStore) Delete(ctx context.Context) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	if err := os.RemoveAll(s.tempDir); err != nil {
		return fmt.Errorf("failed to remove state directory: %w", err)
	}
	return nil
}

// atomicWrite writes data to a file atomically using write-then-rename.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	// Sync to disk (the whole protocol hinges on this record being durable
	// before the trigger call can destroy the writer)
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)

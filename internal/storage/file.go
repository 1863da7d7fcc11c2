package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"catidle/internal/pet"
)

// DefaultPath returns the save file location under the user's config dir
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	return filepath.Join(home, ".config", "catidle", "save.json"), nil
}

// FileSlot stores the save record in a JSON file
type FileSlot struct {
	Path string
}

// NewFileSlot returns a slot backed by path
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{Path: path}
}

func (s *FileSlot) Read() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, pet.ErrNoSave
		}
		return nil, fmt.Errorf("read save file: %w", err)
	}
	return data, nil
}

func (s *FileSlot) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("replace save file: %w", err)
	}
	return nil
}

// Clear deletes the save file. A missing file is not an error.
func (s *FileSlot) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove save file: %w", err)
	}
	return nil
}

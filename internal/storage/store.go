// Package storage reads and writes dataset documents
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-flamechart/internal/model"
)

var (
	// ErrUnsupportedFormat is returned for file extensions without a codec
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrEmptyDataset is returned when a document has no nodes
	ErrEmptyDataset = errors.New("dataset has no nodes")
)

// codec converts a dataset to and from one document format
type codec interface {
	decode(data []byte) (*model.Dataset, error)
	encode(ds *model.Dataset) ([]byte, error)
}

var codecs = map[string]codec{
	".json": jsonCodec{},
	".yaml": yamlCodec{},
	".yml":  yamlCodec{},
	".toml": tomlCodec{},
	".txt":  textCodec{},
}

// Formats returns the supported file extensions
func Formats() []string {
	return []string{".json", ".yaml", ".yml", ".toml", ".txt"}
}

func codecFor(path string) (codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	c, ok := codecs[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return c, nil
}

// Store handles dataset file persistence. The format follows the file
// extension.
type Store struct {
	FilePath string
}

// NewStore creates a new store for the given file path
func NewStore(filePath string) *Store {
	return &Store{
		FilePath: filePath,
	}
}

// Load reads the dataset. A document without nodes is an error wrapping
// ErrEmptyDataset.
func (s *Store) Load() (*model.Dataset, error) {
	c, err := codecFor(s.FilePath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	ds, err := c.decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(s.FilePath), err)
	}

	if model.Count(ds.Nodes) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(s.FilePath), ErrEmptyDataset)
	}

	if ds.Title == "" {
		ds.Title = strings.TrimSuffix(filepath.Base(s.FilePath), filepath.Ext(s.FilePath))
	}

	return ds, nil
}

// Save writes the dataset
func (s *Store) Save(ds *model.Dataset) error {
	c, err := codecFor(s.FilePath)
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := c.encode(ds)
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	if err := os.WriteFile(s.FilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// FileExists checks if the dataset file exists
func (s *Store) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}

// Load is a shorthand for NewStore(path).Load()
func Load(path string) (*model.Dataset, error) {
	return NewStore(path).Load()
}

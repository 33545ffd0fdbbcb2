// Package seed loads bootstrap resources from a file at startup.
package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vyrodovalexey/textstore/internal/model"
)

// Seed file errors.
var (
	ErrFileNotFound      = errors.New("seed file not found")
	ErrEmptyFile         = errors.New("seed file is empty")
	ErrInvalidJSON       = errors.New("invalid JSON syntax")
	ErrInvalidYAML       = errors.New("invalid YAML syntax")
	ErrUnsupportedFormat = errors.New("unsupported seed file format")
)

// LoadFile reads bootstrap resources from a JSON or YAML file. The format
// is detected from the file extension (.json, .yaml, .yml). Returned
// resources carry creator and text only; the store assigns IDs.
func LoadFile(path string) ([]model.Resource, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat seed file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("seed path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w in file: %s", ErrInvalidJSON, path)
		}
		return parseJSON(data)
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func parseJSON(data []byte) ([]model.Resource, error) {
	var resources []model.Resource
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	return resources, nil
}

func parseYAML(data []byte) ([]model.Resource, error) {
	var resources []model.Resource
	if err := yaml.Unmarshal(data, &resources); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return resources, nil
}

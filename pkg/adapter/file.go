package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for formats other than json and yaml
var ErrUnknownFormat = errors.New("unknown external task format")

// FormatFromPath guesses the file format from its extension, defaulting to json
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

func normalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// LoadExternalTasks decodes a list of external tasks
func LoadExternalTasks(r io.Reader, format string) ([]ExternalTask, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}

	var items []ExternalTask
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&items)
	default:
		err = json.NewDecoder(r).Decode(&items)
	}
	if errors.Is(err, io.EOF) {
		return []ExternalTask{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decoding external tasks: %w", err)
	}
	return items, nil
}

// LoadExternalFile reads external tasks from path, picking the format by extension
func LoadExternalFile(path string) ([]ExternalTask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening external tasks: %w", err)
	}
	defer f.Close()
	return LoadExternalTasks(f, FormatFromPath(path))
}

// WriteExternalTasks encodes items in the given format
func WriteExternalTasks(w io.Writer, format string, items []ExternalTask) error {
	format, err := normalizeFormat(format)
	if err != nil {
		return err
	}
	if items == nil {
		items = []ExternalTask{}
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encoding external tasks: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encoding external tasks: %w", err)
		}
	}
	return nil
}

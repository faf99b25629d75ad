package content

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// catalogFile is the document shape of a catalog file.
type catalogFile struct {
	Records []Record `json:"records" yaml:"records"`
}

// Builtin returns the records shipped with the binary.
func Builtin() ([]Record, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin catalog: %w", err)
	}
	var records []Record
	for _, entry := range entries {
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin catalog %s: %w", entry.Name(), err)
		}
		recs, err := decodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin catalog %s: %w", entry.Name(), err)
		}
		records = append(records, recs...)
	}
	return records, nil
}

// LoadDir reads every *.yaml, *.yml and *.json file in dir, in name order.
// A missing directory yields no records. Files that fail to parse are
// skipped with a warning.
func LoadDir(dir string) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !slices.Contains([]string{".yaml", ".yml", ".json"}, ext) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		recs, err := LoadFile(path)
		if err != nil {
			slog.Warn("skipping catalog file", "path", path, "error", err)
			continue
		}
		records = append(records, recs...)
	}
	return records, nil
}

// LoadFile reads one catalog file. JSON files may hold a single record, an
// array of records or a {"records": [...]} document; YAML files hold either
// a records document or a list.
func LoadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return decodeJSON(data)
	}
	return decodeYAML(data)
}

func decodeYAML(data []byte) ([]Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var records []Record
		if err := root.Decode(&records); err != nil {
			return nil, err
		}
		return records, nil
	}
	var file catalogFile
	if err := root.Decode(&file); err != nil {
		return nil, err
	}
	return file.Records, nil
}

func decodeJSON(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var records []Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, err
	}
	if _, ok := probe["records"]; ok {
		var file catalogFile
		if err := json.Unmarshal(trimmed, &file); err != nil {
			return nil, err
		}
		return file.Records, nil
	}
	var rec Record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return nil, err
	}
	return []Record{rec}, nil
}

// Package config loads the extension-to-category mapping that drives
// organization. Files are JSON objects mapping a category name to a list of
// extensions; YAML files with the same shape are accepted as well.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"extsort/internal/errors"
	"extsort/internal/log"
	"extsort/pkg/types"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file used when none is given.
const DefaultPath = "config.json"

// CategoryMap is the ordered list of categories from a config file. When an
// extension is listed by more than one category, the earliest one wins.
type CategoryMap []types.Category

// Normalize lowercases ext and makes sure it starts with a dot.
// Surrounding whitespace is dropped; an empty input stays empty.
func Normalize(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// Lookup returns the first category listing ext.
func (m CategoryMap) Lookup(ext string) (string, bool) {
	ext = Normalize(ext)
	if ext == "" {
		return "", false
	}
	for _, c := range m {
		if c.Has(ext) {
			return c.Name, true
		}
	}
	return "", false
}

// Names returns the category names in config order.
func (m CategoryMap) Names() []string {
	names := make([]string, 0, len(m))
	for _, c := range m {
		names = append(names, c.Name)
	}
	return names
}

// Validate checks that every category has a usable name and only non-empty
// extensions. Extensions shared between categories are allowed but logged.
func (m CategoryMap) Validate() error {
	seen := make(map[string]bool, len(m))
	owner := make(map[string]string)
	for _, c := range m {
		name := c.Name
		if strings.TrimSpace(name) == "" {
			return errors.NewConfigError("category name is required", "", errors.InvalidConfig, nil)
		}
		if name != strings.TrimSpace(name) {
			return errors.NewConfigError("category name has surrounding whitespace", c.Name, errors.InvalidConfig, nil)
		}
		if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return errors.NewConfigError("category name must be a plain folder name", c.Name, errors.InvalidConfig, nil)
		}
		if seen[name] {
			return errors.NewConfigError("duplicate category", c.Name, errors.InvalidConfig, nil)
		}
		seen[name] = true

		for _, ext := range c.Extensions {
			if ext == "" || ext == "." {
				return errors.NewConfigError("empty extension in category", c.Name, errors.InvalidConfig, nil)
			}
			if first, ok := owner[ext]; ok {
				log.LogWithFields(log.F("extension", ext), log.F("category", c.Name), log.F("wins", first)).
					Warn("Extension listed by more than one category")
				continue
			}
			owner[ext] = c.Name
		}
	}
	return nil
}

// Load reads the category map at path. A missing file, unreadable content or
// an invalid mapping are all returned as *errors.ConfigError.
func Load(path string) (CategoryMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("configuration file not found", path, errors.ConfigNotFound, err)
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.InvalidConfig, err)
	}

	var categories CategoryMap
	if isYAML(path) {
		categories, err = ParseYAML(data)
	} else {
		categories, err = Parse(data)
	}
	if err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if err := categories.Validate(); err != nil {
		return nil, errors.NewConfigError("invalid configuration", path, errors.InvalidConfig, err)
	}

	log.LogWithFields(log.F("path", path), log.F("categories", len(categories))).Debug("Loaded category map")
	return categories, nil
}

// Parse decodes a JSON object of category name to extension list, keeping
// the key order of the document.
func Parse(data []byte) (CategoryMap, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object of categories")
	}

	categories := CategoryMap{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading category name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected category name, got %v", tok)
		}

		var exts []string
		if err := dec.Decode(&exts); err != nil {
			return nil, fmt.Errorf("category %q: extensions must be a list of strings: %w", name, err)
		}
		categories = categories.add(newCategory(name, exts))
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading end of object: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after the category object")
	}
	return categories, nil
}

// ParseYAML decodes a YAML mapping of category name to extension list,
// keeping the key order of the document.
func ParseYAML(data []byte) (CategoryMap, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping of categories")
	}

	categories := CategoryMap{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		var exts []string
		if err := value.Decode(&exts); err != nil {
			return nil, fmt.Errorf("category %q (line %d): extensions must be a list of strings: %w", key.Value, key.Line, err)
		}
		categories = categories.add(newCategory(key.Value, exts))
	}
	return categories, nil
}

func newCategory(name string, exts []string) types.Category {
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		normalized = append(normalized, Normalize(ext))
	}
	return types.Category{Name: strings.TrimSpace(name), Extensions: normalized}
}

// add appends c, or replaces the extensions of an earlier category with the
// same name. A repeated key keeps its first position and its last value.
func (m CategoryMap) add(c types.Category) CategoryMap {
	for i := range m {
		if m[i].Name == c.Name {
			log.LogWithFields(log.F("category", c.Name)).Warn("Category listed twice, using the later list")
			m[i].Extensions = c.Extensions
			return m
		}
	}
	return append(m, c)
}

// Save writes categories to path, as YAML when the path ends in .yaml or
// .yml and as JSON otherwise. Parent directories are created as needed.
func Save(categories CategoryMap, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = categories.MarshalYAMLDocument()
	} else {
		data, err = categories.MarshalJSON()
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// MarshalJSON renders the map as a JSON object in category order.
func (m CategoryMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, c := range m {
		if i > 0 {
			buf.WriteString(",")
		}
		name, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		exts := c.Extensions
		if exts == nil {
			exts = []string{}
		}
		list, err := json.Marshal(exts)
		if err != nil {
			return nil, err
		}
		buf.WriteString("\n  ")
		buf.Write(name)
		buf.WriteString(": ")
		buf.Write(list)
	}
	if len(m) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// MarshalYAMLDocument renders the map as a YAML mapping in category order.
func (m CategoryMap) MarshalYAMLDocument() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range m {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, ext := range c.Extensions {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: ext, Style: yaml.DoubleQuotedStyle})
		}
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: c.Name}, seq)
	}
	return yaml.Marshal(root)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Default returns the built-in category map. Each call returns a fresh
// value, so callers may modify it freely.
func Default() CategoryMap {
	return CategoryMap{
		{Name: "Documents", Extensions: []string{".pdf", ".doc", ".docx", ".odt", ".rtf", ".txt", ".md", ".xls", ".xlsx", ".csv", ".ppt", ".pptx"}},
		{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp", ".tiff", ".heic"}},
		{Name: "Audio", Extensions: []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a"}},
		{Name: "Video", Extensions: []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".webm"}},
		{Name: "Archives", Extensions: []string{".zip", ".tar", ".gz", ".bz2", ".xz", ".rar", ".7z"}},
		{Name: "Code", Extensions: []string{".go", ".py", ".js", ".ts", ".html", ".css", ".sh", ".c", ".cpp", ".h", ".java", ".rs"}},
	}
}

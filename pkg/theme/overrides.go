package theme

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadOverrides reads a JSON or YAML file holding global, light and dark
// override layers. A nil fsys or empty path yields an empty Resolver.
func LoadOverrides(fsys fs.FS, path string) (Resolver, error) {
	if fsys == nil || strings.TrimSpace(path) == "" {
		return Resolver{}, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
	default:
		return Resolver{}, fmt.Errorf("theme: unsupported override file %s", path)
	}

	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Resolver{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	return ParseOverrides(data, path)
}

// ParseOverrides decodes override layers from JSON or YAML.
func ParseOverrides(data []byte, source string) (Resolver, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Resolver{}, fmt.Errorf("theme: file %s is empty", source)
	}

	var r Resolver
	if err := json.Unmarshal(data, &r); err == nil {
		return r, nil
	}

	r = Resolver{}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Resolver{}, fmt.Errorf("theme: parse %s: %w", source, err)
	}
	return r, nil
}

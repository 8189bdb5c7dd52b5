package registry

import (
	"fmt"
	"os"

	"github.com/ralt/apprepogen/internal/models"
	"github.com/ralt/apprepogen/internal/scanner"
	"gopkg.in/yaml.v3"
)

// ParseYAMLPackage reads a YAML descriptor
func ParseYAMLPackage(path string) (string, models.Descriptor, error) {
	pkgID := scanner.PackageID(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgID, nil, parseError(pkgID, fmt.Errorf("failed to read %s: %w", path, err))
	}

	var content map[string]interface{}
	if err := yaml.Unmarshal(data, &content); err != nil {
		return pkgID, nil, parseError(pkgID, fmt.Errorf("failed to parse %s: %w", path, err))
	}
	if content == nil {
		return pkgID, nil, parseError(pkgID, fmt.Errorf("%s does not contain a mapping", path))
	}

	for key, value := range content {
		content[key] = stringKeys(value)
	}

	return pkgID, models.Descriptor(content), nil
}

// stringKeys rewrites nested mappings decoded with non-string keys
// (e.g. `1: someone`) into map[string]interface{} so descriptors stay
// JSON-encodable, like the ones produced by the Python loader.
func stringKeys(value interface{}) interface{} {
	switch v := value.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = stringKeys(item)
		}
		return out
	case map[string]interface{}:
		for key, item := range v {
			v[key] = stringKeys(item)
		}
		return v
	case []interface{}:
		for i, item := range v {
			v[i] = stringKeys(item)
		}
		return v
	default:
		return value
	}
}

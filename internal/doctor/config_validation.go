package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/omnisharp-client/internal/config"
	"github.com/conn-castle/omnisharp-client/internal/messages"
)

type configUnknownKeyDetail struct {
	Path       string
	Allowed    []string
	Suggestion string
}

// configSchemaNode is a table in the config file; leaves have no children.
type configSchemaNode struct {
	children map[string]*configSchemaNode
}

var (
	configSchemaOnce sync.Once
	configSchemaRoot *configSchemaNode
)

// formatUnknownKeyRecommendation renders a multi-line recommendation for unknown keys.
func formatUnknownKeyRecommendation(configPath string, details []configUnknownKeyDetail) string {
	if len(details) == 0 {
		return ""
	}
	lines := []string{
		fmt.Sprintf(messages.DoctorUnknownKeysEditFmt, configPath),
		"",
		messages.DoctorUnknownKeysDetected,
	}
	for _, detail := range details {
		line := "- " + detail.Path
		if len(detail.Allowed) > 0 {
			line = fmt.Sprintf(messages.DoctorUnknownKeyAllowedFmt, line, strings.Join(detail.Allowed, ", "))
		}
		if detail.Suggestion != "" {
			line = fmt.Sprintf(messages.DoctorUnknownKeySuggestFmt, line, detail.Suggestion)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// configUnknownKeys returns the keys in configPath that config.Config does not declare.
func configUnknownKeys(configPath string) ([]configUnknownKeyDetail, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var details []configUnknownKeyDetail
	findUnknownConfigKeys(raw, configSchema(), "", &details)
	sort.Slice(details, func(i, j int) bool {
		return details[i].Path < details[j].Path
	})
	return details, nil
}

func configSchema() *configSchemaNode {
	configSchemaOnce.Do(func() {
		configSchemaRoot = buildSchema(reflect.TypeOf(config.Config{}))
	})
	return configSchemaRoot
}

// buildSchema walks toml tags of struct t. Non-struct fields become leaves.
func buildSchema(t reflect.Type) *configSchemaNode {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	node := &configSchemaNode{}
	if t.Kind() != reflect.Struct {
		return node
	}
	node.children = make(map[string]*configSchemaNode)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		key, _, _ := strings.Cut(field.Tag.Get("toml"), ",")
		if key == "" || key == "-" {
			continue
		}
		node.children[key] = buildSchema(field.Type)
	}
	return node
}

func findUnknownConfigKeys(raw map[string]any, schema *configSchemaNode, path string, details *[]configUnknownKeyDetail) {
	allowed := schema.allowedKeys()
	for key, value := range raw {
		keyPath := joinConfigPath(path, key)
		child, ok := schema.children[key]
		if !ok {
			*details = append(*details, configUnknownKeyDetail{
				Path:       keyPath,
				Allowed:    allowed,
				Suggestion: suggestKeyRename(key, schema, path),
			})
			continue
		}
		if table, ok := value.(map[string]any); ok && len(child.children) > 0 {
			findUnknownConfigKeys(table, child, keyPath, details)
		}
	}
}

func (n *configSchemaNode) allowedKeys() []string {
	keys := make([]string, 0, len(n.children))
	for key := range n.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func joinConfigPath(path string, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// suggestKeyRename maps an unknown key to a known sibling differing only in
// case or in using dashes for underscores.
func suggestKeyRename(key string, schema *configSchemaNode, path string) string {
	normalized := strings.ReplaceAll(key, "-", "_")
	for allowed := range schema.children {
		if strings.EqualFold(key, allowed) || strings.EqualFold(normalized, allowed) {
			return joinConfigPath(path, allowed)
		}
	}
	return ""
}

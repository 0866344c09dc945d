package config

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encode writes f in the given format. YAML output carries a comment above
// each documented key.
func Encode(f File, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf).SetIndentTables(true)
		if err := enc.Encode(f); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var doc yaml.Node
		if err := doc.Encode(f); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		annotate(&doc, reflect.TypeOf(f))
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&doc); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}

// annotate copies yamlcomment struct tags onto the matching mapping keys.
func annotate(node *yaml.Node, t reflect.Type) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		annotate(node.Content[0], t)
		return
	}
	if node.Kind != yaml.MappingNode || t.Kind() != reflect.Struct {
		return
	}
	fields := make(map[string]reflect.StructField, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			fields[name] = sf
		}
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		sf, ok := fields[key.Value]
		if !ok {
			continue
		}
		if c := sf.Tag.Get("yamlcomment"); c != "" {
			key.HeadComment = c
		}
		annotate(val, sf.Type)
	}
}

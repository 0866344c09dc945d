package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// Format is a config file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat accepts "yaml", "yml" and "toml" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported config format %q (want yaml or toml)", s)
	}
}

// FormatFromPath picks the format from a file extension. Unknown extensions
// are read as YAML.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatYAML
}

// DefaultConfigYAML returns a copy of the embedded default config.
func DefaultConfigYAML() []byte {
	return bytes.Clone(embeddedDefaultConfig)
}

// Default decodes the embedded default config.
func Default() (File, error) {
	if len(embeddedDefaultConfig) == 0 {
		return File{}, fmt.Errorf("embedded default config is empty")
	}
	f, err := Decode(embeddedDefaultConfig, FormatYAML)
	if err != nil {
		return File{}, fmt.Errorf("decode embedded default config: %w", err)
	}
	return f, nil
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (File, error) {
	var f File
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return File{}, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return File{}, err
		}
	}
	return f, nil
}

// LoadFile reads and decodes a single config file.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return File{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return f, nil
}

// Load returns the default config merged with the file at path. An empty path
// yields the defaults.
func Load(path string) (File, error) {
	cfg, err := Default()
	if err != nil {
		return File{}, err
	}
	if path == "" {
		return cfg, nil
	}
	user, err := LoadFile(path)
	if err != nil {
		return File{}, err
	}
	return Merge(cfg, user), nil
}

// Merge returns base with every field set in over applied on top.
func Merge(base, over File) File {
	out := base
	setIf(&out.Menu.Prompt, over.Menu.Prompt)
	setIf(&out.Menu.Rows, over.Menu.Rows)
	setIf(&out.Menu.Display, over.Menu.Display)
	setIf(&out.Menu.FrameInterval, over.Menu.FrameInterval)
	setIf(&out.Font.Name, over.Font.Name)
	setIf(&out.Font.Size, over.Font.Size)
	setIf(&out.Colors.Font, over.Colors.Font)
	setIf(&out.Colors.FontActive, over.Colors.FontActive)
	setIf(&out.Colors.Background, over.Colors.Background)
	setIf(&out.Colors.BackgroundActive, over.Colors.BackgroundActive)
	setIf(&out.Colors.Border, over.Colors.Border)
	setIf(&out.Geometry, over.Geometry)

	if len(base.Profiles) > 0 || len(over.Profiles) > 0 {
		out.Profiles = maps.Clone(base.Profiles)
		if out.Profiles == nil {
			out.Profiles = make(map[string]Geometry, len(over.Profiles))
		}
		for name, g := range over.Profiles {
			out.Profiles[name] = MergeGeometry(out.Profiles[name], g)
		}
	}
	return out
}

// MergeGeometry applies the fields set in over to base.
func MergeGeometry(base, over Geometry) Geometry {
	out := base
	setIf(&out.Padding, over.Padding)
	setIf(&out.LineSpacing, over.LineSpacing)
	setIf(&out.BorderSize, over.BorderSize)
	setIf(&out.Width, over.Width)
	return out
}

func setIf[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// ActiveGeometry returns the profile named by f.Geometry.
func (f File) ActiveGeometry() (string, Geometry, error) {
	name := deref(f.Geometry, "")
	if name == "" {
		return "", Geometry{}, fmt.Errorf("no geometry profile selected")
	}
	g, ok := f.Profiles[name]
	if !ok {
		return name, Geometry{}, fmt.Errorf("geometry profile %q is not defined", name)
	}
	return name, g, nil
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Package config loads, merges and resolves prun's configuration file.
//
// Every field in the file schema is optional. The embedded default config
// supplies a value for everything, and user files are merged over it one field
// at a time, so a nil pointer always means "not set here".
package config

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration schema.
type File struct {
	Menu   MenuConfig   `yaml:"menu" toml:"menu" yamlcomment:"Menu behavior"`
	Font   FontConfig   `yaml:"font" toml:"font" yamlcomment:"Text font"`
	Colors ColorsConfig `yaml:"colors" toml:"colors" yamlcomment:"Colors as #rrggbb or ANSI 0-255"`
	// Geometry names the entry of Profiles that sizes the window.
	Geometry *string             `yaml:"geometry,omitempty" toml:"geometry,omitempty" yamlcomment:"Active geometry profile"`
	Profiles map[string]Geometry `yaml:"profiles,omitempty" toml:"profiles,omitempty" yamlcomment:"Geometry profiles"`
}

// MenuConfig holds behavior settings.
type MenuConfig struct {
	Prompt  *string `yaml:"prompt,omitempty" toml:"prompt,omitempty" yamlcomment:"Text shown before the query"`
	Rows    *int    `yaml:"rows,omitempty" toml:"rows,omitempty" yamlcomment:"Visible rows"`
	Display *int    `yaml:"display,omitempty" toml:"display,omitempty" yamlcomment:"Target display index, -1 for the default"`
	// FrameInterval is a Go duration string.
	FrameInterval *string `yaml:"frame_interval,omitempty" toml:"frame_interval,omitempty" yamlcomment:"Minimum time between frames"`
}

// FontConfig selects the font.
type FontConfig struct {
	Name *string `yaml:"name,omitempty" toml:"name,omitempty" yamlcomment:"Font file base name, empty for the backend default"`
	Size *int    `yaml:"size,omitempty" toml:"size,omitempty" yamlcomment:"Font size"`
}

// ColorsConfig holds the palette.
type ColorsConfig struct {
	Font             *ColorValue `yaml:"font,omitempty" toml:"font,omitempty"`
	FontActive       *ColorValue `yaml:"font_active,omitempty" toml:"font_active,omitempty"`
	Background       *ColorValue `yaml:"background,omitempty" toml:"background,omitempty"`
	BackgroundActive *ColorValue `yaml:"background_active,omitempty" toml:"background_active,omitempty"`
	Border           *ColorValue `yaml:"border,omitempty" toml:"border,omitempty"`
}

// Geometry sizes the window in backend units.
type Geometry struct {
	Padding     *int `yaml:"padding,omitempty" toml:"padding,omitempty"`
	LineSpacing *int `yaml:"line_spacing,omitempty" toml:"line_spacing,omitempty"`
	BorderSize  *int `yaml:"border_size,omitempty" toml:"border_size,omitempty"`
	Width       *int `yaml:"width,omitempty" toml:"width,omitempty"`
}

// ColorValue stores a color token as written: "#rrggbb", "#rgb" or an ANSI
// index. Numeric values marshal as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (any, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	*c = ColorValue(value.Value)
	return nil
}

// MarshalText and UnmarshalText serve the TOML codec.
func (c ColorValue) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

func (c *ColorValue) UnmarshalText(text []byte) error {
	*c = ColorValue(text)
	return nil
}

// Ptr returns a pointer to v. It keeps literal config values short.
func Ptr[T any](v T) *T {
	return &v
}

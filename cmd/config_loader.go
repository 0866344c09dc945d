package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/oakwood-commons/prun/internal/config"
	"github.com/oakwood-commons/prun/internal/font"
	"github.com/oakwood-commons/prun/pkg/settings"
)

var configFileNames = []string{"config.yaml", "config.yml", "config.toml"}

// resolveConfigPath returns explicit when set, otherwise the first config file
// found under $XDG_CONFIG_HOME/prun or ~/.config/prun. An empty result means
// the embedded defaults are used alone.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, settings.CliBinaryName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", settings.CliBinaryName))
	}

	for _, dir := range dirs {
		for _, name := range configFileNames {
			p := filepath.Join(dir, name)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p
			}
		}
	}
	return ""
}

// loadConfigFile merges the config file at path over the defaults and then
// applies every flag the user set on the command line.
func loadConfigFile(path string, flags *pflag.FlagSet) (config.File, error) {
	f, err := config.Load(path)
	if err != nil {
		return config.File{}, err
	}
	return config.Merge(f, flagOverrides(f, flags)), nil
}

// loadMenu resolves the merged configuration into menu settings.
func loadMenu(path string, flags *pflag.FlagSet) (settings.Menu, error) {
	f, err := loadConfigFile(path, flags)
	if err != nil {
		return settings.Menu{}, err
	}
	return config.Resolve(f, font.NewFinder().Find)
}

// flagOverrides builds a config layer holding only the flags that changed.
// Geometry flags apply to the active profile, or to the one named by
// --geometry.
func flagOverrides(base config.File, flags *pflag.FlagSet) config.File {
	var over config.File
	changed := flags.Changed

	if changed("prompt") {
		over.Menu.Prompt = config.Ptr(prompt)
	}
	if changed("rows") {
		over.Menu.Rows = config.Ptr(rows)
	}
	if changed("display") {
		over.Menu.Display = config.Ptr(display)
	}
	if changed("frame-interval") {
		over.Menu.FrameInterval = config.Ptr(frameInterval.String())
	}
	if changed("font") {
		over.Font.Name = config.Ptr(fontName)
	}
	if changed("font-size") {
		over.Font.Size = config.Ptr(fontSize)
	}

	colors := []struct {
		flag  string
		value string
		dst   **config.ColorValue
	}{
		{"font-color", fontColor, &over.Colors.Font},
		{"font-color-active", fontColorActive, &over.Colors.FontActive},
		{"background-color", backgroundColor, &over.Colors.Background},
		{"background-color-active", backgroundColorActive, &over.Colors.BackgroundActive},
		{"border-color", borderColor, &over.Colors.Border},
	}
	for _, c := range colors {
		if changed(c.flag) {
			*c.dst = config.Ptr(config.ColorValue(c.value))
		}
	}

	profile := ""
	if base.Geometry != nil {
		profile = *base.Geometry
	}
	if changed("geometry") {
		profile = geometryProfile
		over.Geometry = config.Ptr(geometryProfile)
	}

	var g config.Geometry
	geometry := false
	ints := []struct {
		flag  string
		value int
		dst   **int
	}{
		{"padding", padding, &g.Padding},
		{"line-spacing", lineSpacing, &g.LineSpacing},
		{"border-size", borderSize, &g.BorderSize},
		{"width", width, &g.Width},
	}
	for _, i := range ints {
		if changed(i.flag) {
			*i.dst = config.Ptr(i.value)
			geometry = true
		}
	}
	if geometry && profile != "" {
		over.Profiles = map[string]config.Geometry{profile: g}
	}
	return over
}

package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/oakwood-commons/prun/pkg/settings"
)

// ErrInvalidColor is returned for color tokens that are neither hex nor an
// ANSI index.
var ErrInvalidColor = errors.New("invalid color")

// FontFinder maps a font name to a file path.
type FontFinder func(name string) (string, error)

// ParseColor accepts "#rrggbb", "#rgb" or an ANSI palette index 0-255.
func ParseColor(v ColorValue) (color.Color, error) {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidColor)
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("%w: ANSI index %d out of range", ErrInvalidColor, n)
		}
		return lipgloss.Color(s), nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) == 4 {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, string(v))
	}
	return c, nil
}

// Resolve validates f and turns it into the immutable menu settings. fonts
// may be nil when the backend does not load font files.
func Resolve(f File, fonts FontFinder) (settings.Menu, error) {
	var m settings.Menu
	var errs []error

	profile, geo, err := f.ActiveGeometry()
	if err != nil {
		return m, err
	}

	m.Prompt = deref(f.Menu.Prompt, "")
	m.Rows = deref(f.Menu.Rows, 0)
	m.Display = deref(f.Menu.Display, settings.NoDisplay)
	m.FontName = deref(f.Font.Name, "")
	m.FontSize = deref(f.Font.Size, 0)
	m.Padding = deref(geo.Padding, 0)
	m.LineSpacing = deref(geo.LineSpacing, 0)
	m.BorderSize = deref(geo.BorderSize, 0)
	m.Width = deref(geo.Width, 0)

	if m.Rows < 1 {
		errs = append(errs, fmt.Errorf("menu.rows must be at least 1, got %d", m.Rows))
	}
	if m.Display < settings.NoDisplay {
		errs = append(errs, fmt.Errorf("menu.display must be -1 or a display index, got %d", m.Display))
	}
	if m.FontSize < 1 {
		errs = append(errs, fmt.Errorf("font.size must be positive, got %d", m.FontSize))
	}
	for _, g := range []struct {
		name string
		v    int
	}{{"padding", m.Padding}, {"line_spacing", m.LineSpacing}, {"border_size", m.BorderSize}} {
		if g.v < 0 {
			errs = append(errs, fmt.Errorf("profiles.%s.%s must not be negative, got %d", profile, g.name, g.v))
		}
	}
	if minW := 2*(m.BorderSize+m.Padding) + 1; m.Width < minW {
		errs = append(errs, fmt.Errorf("profiles.%s.width must be at least %d, got %d", profile, minW, m.Width))
	}

	interval := deref(f.Menu.FrameInterval, "")
	if interval != "" {
		d, err := time.ParseDuration(interval)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("menu.frame_interval: %w", err))
		case d <= 0:
			errs = append(errs, fmt.Errorf("menu.frame_interval must be positive, got %s", d))
		default:
			m.FrameInterval = d
		}
	}

	colors := []struct {
		name string
		src  *ColorValue
		dst  *color.Color
	}{
		{"colors.font", f.Colors.Font, &m.FontColor},
		{"colors.font_active", f.Colors.FontActive, &m.FontColorActive},
		{"colors.background", f.Colors.Background, &m.BackgroundColor},
		{"colors.background_active", f.Colors.BackgroundActive, &m.BackgroundColorActive},
		{"colors.border", f.Colors.Border, &m.BorderColor},
	}
	for _, c := range colors {
		parsed, err := ParseColor(deref(c.src, ""))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
			continue
		}
		*c.dst = parsed
	}

	if m.FontName != "" && fonts != nil {
		path, err := fonts(m.FontName)
		if err != nil {
			errs = append(errs, fmt.Errorf("font.name: %w", err))
		}
		m.FontPath = path
	}

	if len(errs) > 0 {
		return settings.Menu{}, errors.Join(errs...)
	}
	return m, nil
}

// Package font finds font files by name.
package font

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrFontNotFound is returned when no directory holds a matching font file.
var ErrFontNotFound = errors.New("font not found")

var fontExts = []string{".ttf", ".otf", ".ttc"}

// DefaultDirs returns the usual font directories, user directories first.
func DefaultDirs() []string {
	var dirs []string
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		dirs = append(dirs, filepath.Join(d, "fonts"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".local", "share", "fonts"),
			filepath.Join(home, ".fonts"),
		)
	}
	return append(dirs, "/usr/local/share/fonts", "/usr/share/fonts")
}

// Finder searches Dirs in order.
type Finder struct {
	Dirs []string
}

// NewFinder returns a Finder over DefaultDirs.
func NewFinder() *Finder {
	return &Finder{Dirs: DefaultDirs()}
}

// Find returns the first font file whose name, with or without extension,
// equals name ignoring case. A name that is already a path to an existing
// file is returned as is.
func (f *Finder) Find(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrFontNotFound)
	}
	if strings.ContainsRune(name, os.PathSeparator) {
		if st, err := os.Stat(name); err == nil && !st.IsDir() {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s", ErrFontNotFound, name)
	}

	for _, dir := range f.Dirs {
		if path, ok := searchDir(dir, name); ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFontNotFound, name)
}

func searchDir(root, name string) (string, bool) {
	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !matches(d.Name(), name) {
			return nil
		}
		found = path
		return fs.SkipAll
	})
	return found, found != ""
}

func matches(file, name string) bool {
	ext := filepath.Ext(file)
	if !isFontExt(ext) {
		return false
	}
	return strings.EqualFold(file, name) || strings.EqualFold(strings.TrimSuffix(file, ext), name)
}

func isFontExt(ext string) bool {
	for _, e := range fontExts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

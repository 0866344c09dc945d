// Package executables lists the program names a user can launch.
package executables

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// DefaultDirs returns the directories scanned when none are configured: every
// $PATH entry, /bin, and the cargo bin directory.
func DefaultDirs() []string {
	dirs := filepath.SplitList(os.Getenv("PATH"))
	dirs = append(dirs, "/bin")
	if cargo := os.Getenv("CARGO_HOME"); cargo != "" {
		dirs = append(dirs, filepath.Join(cargo, "bin"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".cargo", "bin"))
	}
	return lo.Uniq(lo.Compact(lo.Map(dirs, func(d string, _ int) string {
		if d == "" {
			return ""
		}
		return filepath.Clean(d)
	})))
}

// Scan walks every directory recursively and returns the base names of all
// non-directory entries, deduplicated, in first-seen order. Directories that
// do not exist are skipped. Directories are walked concurrently.
func Scan(ctx context.Context, log logr.Logger, dirs []string) ([]string, error) {
	results := make([][]string, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, dir := range dirs {
		g.Go(func() error {
			names, err := walk(ctx, dir)
			if err != nil {
				return err
			}
			log.V(1).Info("scanned directory", "dir", dir, "count", len(names))
			results[i] = names
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lo.Uniq(lo.Flatten(results)), nil
}

func walk(ctx context.Context, root string) ([]string, error) {
	// WalkDir does not follow a symlinked root such as /bin -> usr/bin.
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	var names []string
	err := filepath.WalkDir(root,func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				if path == root || (d != nil && d.IsDir()) {
					return fs.SkipDir
				}
				return nil
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		names = append(names, d.Name())
		return nil
	})
	if errors.Is(err, fs.SkipDir) {
		err = nil
	}
	return names, err
}

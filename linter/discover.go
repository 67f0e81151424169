package linter

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/addonreview/cachelint/system"
	"github.com/bmatcuk/doublestar"
)

var scriptExtensions = []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".mts", ".cts", ".tsx"}

// IsScriptFile reports whether name has a script source extension.
func IsScriptFile(name string) bool {
	return slices.Contains(scriptExtensions, strings.ToLower(path.Ext(name)))
}

// Discover returns the files to lint under root in lexical order. A directory root is walked and
// filtered by the include and exclude globs, which match slash separated paths relative to root.
// A file root is returned as is when it has a script extension.
func Discover(fsys system.VirtualFS, root string, include, exclude []string) ([]string, error) {
	root = path.Clean(filepath.ToSlash(root))

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", root, err)
	}

	if !info.IsDir() {
		if !IsScriptFile(root) {
			return nil, ErrUnsupportedFile.Wrapf("%s: expected one of %s", root, strings.Join(scriptExtensions, " "))
		}
		return []string{root}, nil
	}

	var files []string
	err = fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := relativeTo(root, p)
		if rel == "" {
			return nil
		}

		if d.IsDir() {
			excluded, err := matchAny(exclude, rel+"/_")
			if err != nil {
				return err
			}
			if excluded {
				return fs.SkipDir
			}
			return nil
		}

		included, err := matchAny(include, rel)
		if err != nil || !included {
			return err
		}
		excluded, err := matchAny(exclude, rel)
		if err != nil || excluded {
			return err
		}

		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover files in %s: %w", root, err)
	}

	if len(files) == 0 {
		return nil, ErrNoFiles.Wrapf("%s", root)
	}

	slices.Sort(files)
	return files, nil
}

func relativeTo(root, p string) string {
	if p == root {
		return ""
	}
	if root == "." {
		return p
	}
	return strings.TrimPrefix(p, strings.TrimSuffix(root, "/")+"/")
}

func matchAny(patterns []string, name string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, ErrInvalidConfig.Wrapf("bad glob pattern %q: %v", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

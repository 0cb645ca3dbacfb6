package inspect

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/metabake/metabake/pkg/errors"
)

// findFirst walks root looking for regular files whose base name contains
// marker (case-insensitive) and returns the first candidate after ordering
// by depth, then lexicographic path. Returns a NOT_FOUND error when nothing
// matches.
func findFirst(root, marker string) (string, error) {
	type candidate struct {
		path  string
		depth int
	}

	marker = strings.ToLower(marker)
	var found []candidate

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.Contains(strings.ToLower(d.Name()), marker) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		found = append(found, candidate{
			path:  path,
			depth: strings.Count(rel, string(os.PathSeparator)),
		})
		return nil
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "walk %s", root)
	}

	if len(found) == 0 {
		return "", errors.New(errors.ErrCodeNotFound, "could not find a file matching %q", marker)
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].depth != found[j].depth {
			return found[i].depth < found[j].depth
		}
		return found[i].path < found[j].path
	})
	return found[0].path, nil
}

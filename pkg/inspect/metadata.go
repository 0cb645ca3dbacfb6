package inspect

import (
	"path/filepath"

	"github.com/metabake/metabake/pkg/errors"
)

// Metadata is the declared package metadata pulled from a build description
// file. It is treated as ground truth for the rendered recipe.
type Metadata struct {
	Name     string
	Version  string
	Homepage string
	Summary  string
}

// Dialect extracts declared metadata from one build-description format
// without running any of the project's build logic. Parse receives the
// file's full path; anything it needs from the surrounding directory is
// resolved from there rather than by changing the working directory.
type Dialect interface {
	Name() string
	Supports(filename string) bool
	Parse(path string) (Metadata, error)
}

// dialects in probe order. setup.py before setup.cfg: when both are present
// at the same depth the walk finds setup.cfg first alphabetically, but the
// dialect is still chosen by the matched file's name, so ordering here only
// matters for files that several dialects claim.
var dialects = []Dialect{
	&SetupPy{},
	&SetupCfg{},
	&PyProject{},
}

// ExtractMetadata locates the project's build description under root and
// parses its declared name, version, homepage, and summary. It first looks
// for a setup-named file (setup.py, setup.cfg); when none exists it falls
// back to pyproject.toml. Fails with NOT_FOUND when neither is present.
func ExtractMetadata(root string) (Metadata, error) {
	path, err := findFirst(root, "setup")
	if errors.Is(err, errors.ErrCodeNotFound) {
		path, err = findFirst(root, "pyproject")
	}
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return Metadata{}, errors.New(errors.ErrCodeNotFound, "could not find a build description file")
		}
		return Metadata{}, err
	}

	base := filepath.Base(path)
	for _, d := range dialects {
		if d.Supports(base) {
			meta, err := d.Parse(path)
			if err != nil {
				return Metadata{}, err
			}
			return meta, nil
		}
	}
	return Metadata{}, errors.New(errors.ErrCodeParse, "no parser for build description %s", base)
}

package inspect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/metabake/metabake/pkg/errors"
)

// License is a best-effort classification of a project's license file.
type License struct {
	ID       string // SPDX-style identifier chosen by the keyword vote
	Filename string // base name of the file the classification came from
}

// licenseKeywords maps keyword patterns to license identifiers. Slice order
// is the canonical tie-break priority: when two identifiers score the same
// highest count, the earlier entry wins.
var licenseKeywords = []struct {
	id      string
	keyword string
	fold    bool // count case-insensitively
}{
	{"MIT", "MIT", false},
	{"Apache-2.0", "apache", true},
	{"GPL-2.0-or-later", "GNU", false},
	{"BSD-3-Clause", "bsd 3", true},
}

// ClassifyLicense finds the first license-named file under root and
// classifies its contents by keyword frequency. This is a heuristic vote,
// not an SPDX parse: a file mentioning MIT three times and Apache once is
// called MIT.
//
// Fails with NOT_FOUND when no file has "license" in its name, and with a
// distinct PARSE_ERROR when a file is found but none of the keywords occur.
func ClassifyLicense(root string) (License, error) {
	path, err := findFirst(root, "license")
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return License{}, errors.New(errors.ErrCodeNotFound, "could not find license file")
		}
		return License{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return License{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}

	content := string(data)
	lower := strings.ToLower(content)

	best, bestCount, total := "", 0, 0
	for _, k := range licenseKeywords {
		var count int
		if k.fold {
			count = strings.Count(lower, k.keyword)
		} else {
			count = strings.Count(content, k.keyword)
		}
		total += count
		if count > bestCount {
			best, bestCount = k.id, count
		}
	}

	if total == 0 {
		return License{}, errors.New(errors.ErrCodeParse,
			"could not find a license in %s, looked for: %s", filepath.Base(path), candidateIDs())
	}

	return License{ID: best, Filename: filepath.Base(path)}, nil
}

func candidateIDs() string {
	ids := make([]string, len(licenseKeywords))
	for i, k := range licenseKeywords {
		ids[i] = k.id
	}
	return fmt.Sprintf("[%s]", strings.Join(ids, ", "))
}

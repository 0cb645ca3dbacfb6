package recipe

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/metabake/metabake/pkg/errors"
)

// Preamble returns the jinja variable-setting header that precedes the YAML
// document. The recipe body refers to these two variables instead of
// repeating the literal name and version.
func Preamble(name, version string) string {
	return fmt.Sprintf("{%% set name = '%s' %%}\n{%% set version = '%s' %%}", name, version)
}

// Render serializes the manifest with its preamble. Top-level sections are
// separated by blank lines to keep the document skimmable for reviewers.
func Render(m *Manifest, name, version string) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode recipe")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode recipe")
	}

	return Preamble(name, version) + "\n\n" + spaceSections(buf.String()), nil
}

// spaceSections inserts a blank line before every top-level key after the
// first, mirroring the conda recipe convention.
func spaceSections(doc string) string {
	lines := strings.Split(strings.TrimRight(doc, "\n"), "\n")

	var out []string
	for i, line := range lines {
		if i > 0 && isTopLevelKey(line) {
			out = append(out, "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n") + "\n"
}

func isTopLevelKey(line string) bool {
	if line == "" || line[0] == ' ' || line[0] == '-' || line[0] == '#' {
		return false
	}
	return strings.Contains(line, ":")
}

package inspect

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/metabake/metabake/pkg/errors"
)

// SetupPy extracts metadata from a setuptools setup.py by static scanning.
// It never executes the file: only string-literal keyword arguments and
// same-file string constants are resolved. That covers the declarative
// setup.py shape this tool targets; anything computed at runtime is out of
// reach by design of the no-execution contract.
type SetupPy struct{}

func (*SetupPy) Name() string { return "setup.py" }

func (*SetupPy) Supports(filename string) bool {
	return strings.EqualFold(filename, "setup.py")
}

func (*SetupPy) Parse(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	src := string(data)

	meta := Metadata{
		Name:     kwarg(src, "name"),
		Version:  kwarg(src, "version"),
		Homepage: kwarg(src, "url"),
		Summary:  kwarg(src, "description"),
	}

	if meta.Name == "" || meta.Version == "" {
		return Metadata{}, errors.New(errors.ErrCodeParse,
			"%s does not declare a literal name and version", filepath.Base(path))
	}
	return meta, nil
}

// kwargRE matches `key=<value>` where the preceding character keeps
// look-alike keys (long_description vs description) from matching.
func kwargRE(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)(?:^|[(,\s])` + key + `\s*=\s*(?:"([^"]*)"|'([^']*)'|([A-Za-z_][A-Za-z0-9_]*))`)
}

// assignRE matches a top-level string constant assignment `key = "..."`.
func assignRE(ident string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + ident + `\s*=\s*(?:"([^"]*)"|'([^']*)')`)
}

// kwarg returns the string value of a setup() keyword argument, resolving a
// bare identifier through a same-file constant assignment. Returns "" when
// the argument is absent or not statically resolvable.
func kwarg(src, key string) string {
	m := kwargRE(key).FindStringSubmatch(src)
	if m == nil {
		return ""
	}
	if m[1] != "" || m[2] != "" {
		return m[1] + m[2]
	}
	if ident := m[3]; ident != "" {
		if a := assignRE(ident).FindStringSubmatch(src); a != nil {
			return a[1] + a[2]
		}
	}
	return ""
}

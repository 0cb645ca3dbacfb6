package inspect

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/metabake/metabake/pkg/errors"
)

// PyProject extracts metadata from pyproject.toml, reading the standard
// [project] table first and falling back to [tool.poetry] for projects that
// predate PEP 621.
type PyProject struct{}

func (*PyProject) Name() string { return "pyproject.toml" }

func (*PyProject) Supports(filename string) bool {
	return strings.EqualFold(filename, "pyproject.toml")
}

type pyprojectFile struct {
	Project struct {
		Name        string            `toml:"name"`
		Version     string            `toml:"version"`
		Description string            `toml:"description"`
		URLs        map[string]string `toml:"urls"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name        string `toml:"name"`
			Version     string `toml:"version"`
			Description string `toml:"description"`
			Homepage    string `toml:"homepage"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func (p *PyProject) Parse(path string) (Metadata, error) {
	var file pyprojectFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return Metadata{}, errors.Wrap(errors.ErrCodeParse, err, "decode %s", filepath.Base(path))
	}

	meta := Metadata{
		Name:     file.Project.Name,
		Version:  file.Project.Version,
		Summary:  file.Project.Description,
		Homepage: projectHomepage(file.Project.URLs),
	}
	if meta.Name == "" {
		meta = Metadata{
			Name:     file.Tool.Poetry.Name,
			Version:  file.Tool.Poetry.Version,
			Summary:  file.Tool.Poetry.Description,
			Homepage: file.Tool.Poetry.Homepage,
		}
	}

	if meta.Name == "" || meta.Version == "" {
		return Metadata{}, errors.New(errors.ErrCodeParse,
			"%s does not declare a project name and version", filepath.Base(path))
	}
	return meta, nil
}

// projectHomepage picks the homepage out of a [project.urls] table, checking
// the conventional key spellings in a fixed order.
func projectHomepage(urls map[string]string) string {
	for _, key := range []string{"Homepage", "homepage", "Home", "Source"} {
		if u, ok := urls[key]; ok {
			return u
		}
	}
	return ""
}

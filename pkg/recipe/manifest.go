// Package recipe defines the conda-build recipe document and renders it as
// templated YAML. Key order is part of the format: conda-forge reviewers
// expect package/source/build/requirements/test/about/extra in that order,
// so the document is modeled as structs (yaml.v3 preserves field order)
// rather than maps.
package recipe

// Manifest is the full meta.yaml document. Top-level section order is fixed
// and significant.
type Manifest struct {
	Package      Package      `yaml:"package"`
	Source       Source       `yaml:"source"`
	Build        Build        `yaml:"build"`
	Requirements Requirements `yaml:"requirements"`
	Test         Test         `yaml:"test"`
	About        About        `yaml:"about"`
	Extra        Extra        `yaml:"extra"`
}

// Package identifies the recipe by template-variable reference; the actual
// values live in the preamble so downstream tooling can override them.
type Package struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Source points at the release tarball and pins its content hash.
type Source struct {
	URL    string `yaml:"url"`
	SHA256 string `yaml:"sha256"`
}

// Build describes the build number and install command.
type Build struct {
	Number int    `yaml:"number"`
	Script string `yaml:"script"`
}

// Requirements lists host and run dependencies. Each list starts with the
// runtime and package-manager bootstrap entries, then the project's raw
// requirement specifiers in file order.
type Requirements struct {
	Host []string `yaml:"host"`
	Run  []string `yaml:"run"`
}

// Test declares the import smoke test.
type Test struct {
	Imports []string `yaml:"imports"`
}

// About carries the inferred project metadata.
type About struct {
	Home        string `yaml:"home"`
	License     string `yaml:"license"`
	LicenseFile string `yaml:"license_file"`
	Summary     string `yaml:"summary"`
	DocURL      string `yaml:"doc_url"`
	DevURL      string `yaml:"dev_url"`
}

// Extra carries conda-forge specific fields.
type Extra struct {
	RecipeMaintainers []string `yaml:"recipe_maintainers"`
}

// InstallScript is the conventional pip install command for noarch python
// recipes.
const InstallScript = "{{ PYTHON }} -m pip install . -vv"

// New assembles a Manifest with the fixed template references and bootstrap
// requirement entries filled in. pkgName is the literal extracted package
// name, used for the import smoke test.
func New(sourceURL, sha256, pkgName string, requirements, maintainers []string, about About) *Manifest {
	host := append([]string{"python", "pip"}, requirements...)
	run := append([]string{"python"}, requirements...)

	return &Manifest{
		Package: Package{
			Name:    "{{ name | lower }}",
			Version: "{{ version }}",
		},
		Source: Source{
			URL:    sourceURL,
			SHA256: sha256,
		},
		Build: Build{
			Number: 0,
			Script: InstallScript,
		},
		Requirements: Requirements{
			Host: host,
			Run:  run,
		},
		Test: Test{
			Imports: []string{pkgName},
		},
		About: about,
		Extra: Extra{
			RecipeMaintainers: maintainers,
		},
	}
}

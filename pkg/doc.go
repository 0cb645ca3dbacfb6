// Package pkg provides the core libraries for the metabake recipe generator.
//
// # Overview
//
// metabake turns a GitHub hosted Python project into a conda-build
// meta.yaml recipe. The pipeline is a linear batch run:
//
//	GitHub release API
//	         ↓
//	    [forge/github] (resolve tag, download tarball, validate users)
//	         ↓
//	    [archive] (hash + scoped extraction)
//	         ↓
//	    [inspect] (license, requirements, build metadata)
//	         ↓
//	    [recipe] (ordered YAML rendering)
//
// # Main Packages
//
// [forge] - Shared HTTP client with timeout and status-to-error mapping;
// [forge/github] is the GitHub-specific client.
//
// [archive] - Tarball content hashing and extraction into a temporary
// directory scoped to one pipeline run.
//
// [inspect] - Heuristic extraction: deterministic walk-and-first-match file
// discovery, license keyword classification, flat requirements reading, and
// build-description metadata dialects (setup.py, setup.cfg, pyproject.toml).
//
// [recipe] - The meta.yaml document model and renderer (fixed key order,
// jinja preamble, blank lines between top-level sections).
//
// [pipeline] - Orchestration: fetch → extract → infer → validate → render,
// fail-fast with per-stage timings.
//
// [errors] - Structured error codes shared by all stages.
//
// [buildinfo] - ldflags-injected version information.
//
// [forge]: https://pkg.go.dev/github.com/metabake/metabake/pkg/forge
// [forge/github]: https://pkg.go.dev/github.com/metabake/metabake/pkg/forge/github
// [archive]: https://pkg.go.dev/github.com/metabake/metabake/pkg/archive
// [inspect]: https://pkg.go.dev/github.com/metabake/metabake/pkg/inspect
// [recipe]: https://pkg.go.dev/github.com/metabake/metabake/pkg/recipe
// [pipeline]: https://pkg.go.dev/github.com/metabake/metabake/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/metabake/metabake/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/metabake/metabake/pkg/buildinfo
package pkg

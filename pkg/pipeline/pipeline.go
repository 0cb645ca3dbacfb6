// Package pipeline orchestrates recipe generation: resolve the latest
// release, fetch and extract the source archive, infer license,
// requirements and build metadata, validate maintainers and URLs, and
// render the recipe document.
//
// The pipeline is a linear, fail-fast batch run. Every stage either
// succeeds or aborts the whole run; there is no partial output. The one
// exception is the version/tag mismatch check, which only logs a warning.
//
// # Usage
//
//	runner := pipeline.NewRunner(github.NewClient(30*time.Second), logger)
//	result, err := runner.Run(ctx, pipeline.Options{
//	    Owner:       "erikmannerfelt",
//	    Repo:        "projectfiles",
//	    Maintainers: []string{"erikmannerfelt"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.Manifest)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/metabake/metabake/pkg/errors"
	"github.com/metabake/metabake/pkg/forge"
	"github.com/metabake/metabake/pkg/inspect"
)

// Options contains all configuration for a recipe generation run.
type Options struct {
	// Owner is the repository owner (user or organization).
	Owner string

	// Repo is the repository name.
	Repo string

	// Maintainers are the forge handles recorded as recipe maintainers.
	// Each one is validated against the forge before rendering.
	Maintainers []string

	// DocURL optionally points at the project documentation. Empty means
	// the recipe's doc_url field is left blank and not validated.
	DocURL string

	// Timeout bounds each network call. Zero means forge.DefaultTimeout.
	Timeout time.Duration

	// Logger receives stage progress and the version-mismatch warning.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if err := errors.ValidateOwner(o.Owner); err != nil {
		return err
	}
	if err := errors.ValidateRepo(o.Repo); err != nil {
		return err
	}
	if len(o.Maintainers) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one maintainer is required")
	}
	for _, handle := range o.Maintainers {
		if err := errors.ValidateHandle(handle); err != nil {
			return err
		}
	}
	if o.DocURL != "" {
		if err := errors.ValidateURL(o.DocURL); err != nil {
			return err
		}
	}

	if o.Timeout <= 0 {
		o.Timeout = forge.DefaultTimeout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Manifest is the rendered recipe text.
	Manifest string

	// Tag is the resolved release tag.
	Tag string

	// License is the classified license.
	License inspect.License

	// Requirements are the raw requirement lines in file order.
	Requirements []string

	// Metadata is the declared build metadata.
	Metadata inspect.Metadata

	// Stats contains per-stage timing information.
	Stats Stats
}

// Stats contains pipeline execution timings.
type Stats struct {
	FetchTime    time.Duration // release lookup + archive download
	ExtractTime  time.Duration
	InferTime    time.Duration // license, requirements, metadata
	ValidateTime time.Duration
	RenderTime   time.Duration
}

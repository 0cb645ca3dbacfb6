package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/metabake/metabake/pkg/archive"
	"github.com/metabake/metabake/pkg/forge/github"
	"github.com/metabake/metabake/pkg/inspect"
	"github.com/metabake/metabake/pkg/recipe"
)

// Runner executes the recipe generation pipeline. It is stateless apart
// from the forge client and logger, so one Runner can serve multiple runs.
type Runner struct {
	Forge  *github.Client
	Logger *log.Logger
}

// NewRunner creates a runner with the given forge client.
// If logger is nil, log.Default() is used.
func NewRunner(client *github.Client, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Forge: client, Logger: logger}
}

// Run executes the full pipeline. Any stage failure aborts the run; the
// manifest is all-or-nothing. The extracted source tree lives only for the
// duration of the call.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	result := &Result{}

	// Stage 1: resolve the release and fetch the source archive.
	fetchStart := time.Now()
	tag, err := r.Forge.LatestRelease(ctx, opts.Owner, opts.Repo)
	if err != nil {
		return nil, fmt.Errorf("resolve release: %w", err)
	}
	result.Tag = tag
	logger.Info("resolved latest release", "repo", opts.Owner+"/"+opts.Repo, "tag", tag)

	data, err := r.Forge.DownloadArchive(ctx, opts.Owner, opts.Repo, tag)
	if err != nil {
		return nil, fmt.Errorf("download archive: %w", err)
	}
	src := archive.New(data)
	result.Stats.FetchTime = time.Since(fetchStart)
	logger.Info("downloaded source archive",
		"bytes", len(data),
		"sha256", src.SHA256[:12],
		"duration", result.Stats.FetchTime)

	// Stage 2: unpack into a scoped temporary tree.
	extractStart := time.Now()
	tree, err := src.Extract()
	if err != nil {
		return nil, fmt.Errorf("extract archive: %w", err)
	}
	defer func() {
		if cerr := tree.Close(); cerr != nil {
			logger.Warn("could not remove extracted tree", "err", cerr)
		}
	}()
	result.Stats.ExtractTime = time.Since(extractStart)
	logger.Debug("extracted archive", "root", tree.Root(), "duration", result.Stats.ExtractTime)

	// Stage 3: infer license, requirements, and build metadata.
	inferStart := time.Now()
	license, err := inspect.ClassifyLicense(tree.Root())
	if err != nil {
		return nil, fmt.Errorf("classify license: %w", err)
	}
	result.License = license
	logger.Info("classified license", "license", license.ID, "file", license.Filename)

	requirements, err := inspect.ReadRequirements(tree.Root())
	if err != nil {
		return nil, fmt.Errorf("read requirements: %w", err)
	}
	result.Requirements = requirements
	logger.Info("read requirements", "count", len(requirements))

	meta, err := inspect.ExtractMetadata(tree.Root())
	if err != nil {
		return nil, fmt.Errorf("extract build metadata: %w", err)
	}
	result.Metadata = meta
	result.Stats.InferTime = time.Since(inferStart)
	logger.Info("extracted build metadata",
		"name", meta.Name,
		"version", meta.Version,
		"duration", result.Stats.InferTime)

	// Stage 4: validate maintainers and URLs. Fail-fast, first error aborts.
	validateStart := time.Now()
	if err := r.Forge.ValidateMaintainers(ctx, opts.Maintainers); err != nil {
		return nil, fmt.Errorf("validate maintainers: %w", err)
	}
	devURL := r.Forge.RepoURL(opts.Owner, opts.Repo)
	if err := r.Forge.ValidateURLs(ctx, []string{devURL, meta.Homepage, opts.DocURL}); err != nil {
		return nil, fmt.Errorf("validate URLs: %w", err)
	}
	result.Stats.ValidateTime = time.Since(validateStart)
	logger.Debug("validated maintainers and URLs", "duration", result.Stats.ValidateTime)

	// A version that does not appear in the tag is suspicious but not
	// fatal; the recipe may simply lag the release naming scheme.
	if !strings.Contains(tag, meta.Version) {
		logger.Warn("version in build metadata may not correspond to release tag",
			"version", meta.Version,
			"tag", tag)
	}

	// Stage 5: render.
	renderStart := time.Now()
	manifest := recipe.New(
		r.Forge.ArchiveURL(opts.Owner, opts.Repo, tag),
		src.SHA256,
		meta.Name,
		requirements,
		opts.Maintainers,
		recipe.About{
			Home:        meta.Homepage,
			License:     license.ID,
			LicenseFile: license.Filename,
			Summary:     meta.Summary,
			DocURL:      opts.DocURL,
			DevURL:      devURL,
		},
	)
	text, err := recipe.Render(manifest, meta.Name, meta.Version)
	if err != nil {
		return nil, fmt.Errorf("render recipe: %w", err)
	}
	result.Manifest = text
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Info("rendered recipe", "duration", result.Stats.RenderTime)

	return result, nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/metabake/metabake/pkg/buildinfo"
	"github.com/metabake/metabake/pkg/errors"
	"github.com/metabake/metabake/pkg/forge/github"
	"github.com/metabake/metabake/pkg/pipeline"
)

// Execute runs the metabake CLI and returns an error if the run fails.
//
// The tool has no subcommands: the root command takes the repository owner,
// the repository name, and one or more maintainer handles as positional
// arguments, renders the recipe, and writes it to stdout.
func Execute(ctx context.Context) error {
	return newRootCommand().ExecuteContext(ctx)
}

// newRootCommand builds the root command. Split from Execute so tests can
// inject arguments.
func newRootCommand() *cobra.Command {
	var (
		verbose bool
		docURL  string
		timeout time.Duration
	)

	root := &cobra.Command{
		Use:   "metabake <owner> <repo> <maintainer>...",
		Short: "metabake generates conda-build recipes from GitHub projects",
		Long: `metabake generates a conda-build meta.yaml recipe for a GitHub hosted
Python project: it resolves the latest release, downloads the source
tarball, infers license, requirements and build metadata, validates the
maintainers, and writes the rendered recipe to stdout.`,
		Args:         cobra.MinimumNArgs(3),
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, docURL, timeout, verbose)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.Flags().StringVar(&docURL, "doc-url", "", "documentation URL recorded in the recipe")
	root.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "timeout for each network call")

	return root
}

func run(cmd *cobra.Command, args []string, docURL string, timeout time.Duration, verbose bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts := pipeline.Options{
		Owner:       args[0],
		Repo:        args[1],
		Maintainers: args[2:],
		DocURL:      docURL,
		Timeout:     timeout,
		Logger:      logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("%s", errors.UserMessage(err))
	}

	runner := pipeline.NewRunner(github.NewClient(timeout), logger)

	// The spinner and the logger share stderr; with verbose logging on (or
	// without a terminal) the spinner would only mangle the output.
	var spinner *Spinner
	if !verbose && isatty.IsTerminal(os.Stderr.Fd()) {
		spinner = newSpinner(ctx, fmt.Sprintf("baking recipe for %s/%s", opts.Owner, opts.Repo))
		spinner.Start()
	}

	track := newProgress(logger)
	result, err := runner.Run(ctx, opts)
	if err != nil {
		if spinner != nil {
			spinner.StopWithError(errors.UserMessage(err))
		}
		return err
	}
	if spinner != nil {
		spinner.StopWithSuccess(fmt.Sprintf("recipe ready: %s %s (license %s, %d requirements)",
			result.Metadata.Name, result.Tag, result.License.ID, len(result.Requirements)))
	}
	track.done(fmt.Sprintf("generated recipe for %s/%s", opts.Owner, opts.Repo))

	_, err = fmt.Fprint(cmd.OutOrStdout(), result.Manifest)
	return err
}

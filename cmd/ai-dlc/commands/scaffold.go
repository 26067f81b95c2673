package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/aidlc/cmd/ai-dlc/opts"
	"github.com/walteh/aidlc/pkg/extract"
	"github.com/walteh/aidlc/pkg/log"
	"github.com/walteh/aidlc/pkg/scaffold"
	"github.com/walteh/aidlc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

type scaffoldFlags struct {
	providers []string
	all       bool
	mode      string
	exclude   []string
	dryRun    bool
	parallel  bool
}

// NewScaffoldCmd creates a new scaffold command
func NewScaffoldCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &scaffoldFlags{}

	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Scaffold provider templates into the current directory",
		Long: `Scaffold writes the templates of one or more providers into the current directory.
In hidden mode (the default) the contents of <provider>/.<provider> are written
directly into the current directory. In templates mode the whole provider
directory is written under ./templates.

Existing files are overwritten.`,
		Example: `  ai-dlc scaffold --provider claude
  ai-dlc scaffold -p cursor -p gemini --dry-run
  ai-dlc scaffold --all --mode templates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "scaffold").Logger().WithContext(ctx)
			console := log.FromContext(ctx)

			mode, err := scaffold.ParseMode(flags.mode)
			if err != nil {
				return errors.Errorf("parsing mode: %w", err)
			}

			cat, err := opts.Catalog()
			if err != nil {
				return errors.Errorf("loading catalog: %w", err)
			}

			workDir, err := opts.Getwd()
			if err != nil {
				return errors.Errorf("getting working directory: %w", err)
			}

			var files status.FileManager = status.NewDiskManager()
			dryRun := status.NewDryRunManager()
			if flags.dryRun {
				files = dryRun
			}
			tracker := status.NewTracker(console)

			ex, err := extract.New(extract.Options{
				Files:    files,
				Reporter: tracker,
				Exclude:  flags.exclude,
			})
			if err != nil {
				return errors.Errorf("creating extractor: %w", err)
			}

			op, err := scaffold.New(scaffold.Options{
				Catalog:   cat,
				Extractor: ex,
				WorkDir:   workDir,
				Mode:      mode,
				Parallel:  flags.parallel,
			})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			if flags.dryRun {
				console.Header("scaffold (dry run)")
			} else {
				console.Header("scaffold")
			}

			result, err := op.Run(ctx, scaffold.Selection{
				Providers: flags.providers,
				All:       flags.all,
			})
			if err != nil {
				return err
			}

			if flags.dryRun {
				for _, dir := range dryRun.PlannedDirs() {
					if _, err := os.Stat(dir); err == nil {
						continue
					}
					console.Infof("would create directory %s", dir)
				}
			}

			if len(result.Scaffolded) > 0 {
				console.Success(tracker.Summary(flags.dryRun))
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&flags.providers, "provider", "p", nil, "provider to scaffold, may be repeated")
	cmd.Flags().BoolVar(&flags.all, "all", false, "scaffold every bundled provider, overrides --provider")
	cmd.Flags().StringVar(&flags.mode, "mode", scaffold.ModeHidden.String(), "layout to write, hidden or templates")
	cmd.Flags().StringArrayVar(&flags.exclude, "exclude", nil, "glob of template paths to skip, may be repeated")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "report what would be written without touching the disk")
	cmd.Flags().BoolVar(&flags.parallel, "parallel", false, "scaffold providers concurrently")

	return cmd
}

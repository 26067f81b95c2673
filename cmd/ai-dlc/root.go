package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/aidlc/cmd/ai-dlc/commands"
	"github.com/walteh/aidlc/cmd/ai-dlc/opts"
	"github.com/walteh/aidlc/pkg/log"
)

// run executes the command line and returns the process exit code
func run(ctx context.Context, o *opts.RootOpts, args []string) int {
	rootCmd := newRootCmd(o)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.New(o.Stderr, zerolog.Nop()).Error(err.Error())
		return 1
	}
	return 0
}

// newRootCmd creates the root command and its subcommands
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ai-dlc",
		Short: "Scaffold AI-DLC workflow templates for coding assistants",
		Long: `ai-dlc writes the AI-DLC workflow templates bundled into the binary
into the current directory, for one or more coding assistant providers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(setupLogging(cmd.Context(), o))
			return nil
		},
	}

	rootCmd.SetOut(o.Stdout)
	rootCmd.SetErr(o.Stderr)

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewScaffoldCmd(o),
		commands.NewListCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging attaches the zerolog and console loggers to ctx based on flags
func setupLogging(ctx context.Context, o *opts.RootOpts) context.Context {
	noColor := !isTerminal(o.Stdout)
	color.NoColor = noColor
	if noColor {
		pterm.DisableColor()
	}

	// warnings already reach the user through the console logger
	level := zerolog.ErrorLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}

	zlog := zerolog.New(zerolog.ConsoleWriter{
		Out:        o.Stderr,
		NoColor:    !isTerminal(o.Stderr),
		TimeFormat: time.Kitchen,
	}).Level(level).With().Timestamp().Logger()

	ctx = zlog.WithContext(ctx)
	return log.NewContext(ctx, log.New(o.Stdout, zlog))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

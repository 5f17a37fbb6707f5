package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// errFilesFailed is returned by run when --fail-on-error is set and at least
// one file failed.
var errFilesFailed = errors.New("some files failed")

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCommand()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "videofilter [dir]",
		Short:         "Apply a chain of ffmpeg filters to every video in a directory",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (TOML, or YAML by extension)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: console or json")
	root.PersistentFlags().StringVar(&opts.toolDir, "tool-dir", "", "Directory containing the ffmpeg binary")
	addRunFlags(root, opts)

	runCmd := &cobra.Command{
		Use:   "run [dir]",
		Short: "Filter every video under dir (default command)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	addRunFlags(runCmd, opts)

	root.AddCommand(runCmd)
	root.AddCommand(newCheckCommand(opts))
	root.AddCommand(newConfigCommand(opts))
	return root
}

func addRunFlags(cmd *cobra.Command, opts *options) {
	f := cmd.Flags()
	f.StringVar(&opts.sequence, "sequence", "", "Comma separated operations, e.g. STABILIZE1,STABILIZE2,ROTATE_CCW")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Log the commands without running them")
	f.BoolVar(&opts.strict, "strict", false, "Treat a non-zero exit status as a failed file")
	f.BoolVar(&opts.skipExisting, "skip-existing", false, "Skip files whose final output already exists")
	f.StringVar(&opts.report, "report", "", "Write a JSON report to this file or directory")
	f.BoolVar(&opts.failOnError, "fail-on-error", false, "Exit with status 1 when any file failed")
}

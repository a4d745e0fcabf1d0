package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"smashtest/internal/buildtool"
	"smashtest/internal/config"
	"smashtest/internal/harness"
	"smashtest/internal/report"
)

// NewRootCmd creates the root cobra command with all subcommands.
//
// `smashtest <name>` runs one test, `smashtest` runs every test in sorted
// order. Exit status reflects build failures and harness setup problems
// only; per-test PASS/FAIL is console output (results are inspected,
// not CI-gated).
func NewRootCmd() *cobra.Command {
	var configPath string
	var bin string
	var skipBuild bool

	rootCmd := &cobra.Command{
		Use:   "smashtest [test-name]",
		Short: "Golden-output test harness for the smash shell",
		Long: `smashtest drives the smash shell with scripted input, captures its
output (through a PTY with an injected SIGINT for ctrlc* tests), masks
process IDs, and diffs the result against golden transcripts.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, bin)
			if err != nil {
				return err
			}

			rep := report.New(cmd.OutOrStdout())

			if !skipBuild {
				rep.BuildStart()
				if err := buildtool.Build(cmd.Context(), cfg.BuildCommand); err != nil {
					rep.BuildFailed(err)
					return fmt.Errorf("build failed")
				}
				rep.BuildOK()
			}

			h := harness.New(cfg, rep)
			if err := h.Store.EnsureDirs(); err != nil {
				return err
			}

			if len(args) == 1 {
				h.RunTest(cmd.Context(), args[0])
				return nil
			}

			_, err = h.RunAll(cmd.Context())
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Harness config file (default smashtest.yaml if present)")
	rootCmd.Flags().StringVar(&bin, "bin", "", "Shell binary under test (overrides config)")
	rootCmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Run against an already-built binary")

	rootCmd.AddCommand(
		newListCmd(&configPath),
		newVersionCmd(),
	)

	return rootCmd
}

// loadConfig resolves the harness config plus command-line overrides.
func loadConfig(path, bin string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, fmt.Errorf("config %s: %w", path, statErr)
		}
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if bin != "" {
		cfg.Bin = bin
	}
	return cfg, nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"smashtest/internal/teststore"
)

func newListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discovered test cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, "")
			if err != nil {
				return err
			}
			store := teststore.New(cfg.InputDir, cfg.OutputDir, cfg.ExpectedDir)
			names, err := store.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tests found.")
				return nil
			}
			for _, name := range names {
				kind := "plain"
				if teststore.IsInteractive(name) {
					kind = "interactive"
				}
				if teststore.NeedsFixture(name) {
					kind += "+fixture"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, kind)
			}
			return nil
		},
	}
}

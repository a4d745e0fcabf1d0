package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"smashtest/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the smashtest version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.DisplayVersion())
		},
	}
}

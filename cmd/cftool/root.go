package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cftool",
		Short: "Italian fiscal code and optics conversion tool",
		Long: `cftool generates, validates and decodes Italian fiscal codes and runs
the optics conversions used by the clinic front desk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCommand(),
		newValidateCommand(),
		newDecodeCommand(),
		newKeratometryCommand(),
		newContactLensCommand(),
	)
	return root
}

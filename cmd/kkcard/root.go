package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := newCommandContext()

	rootCmd := &cobra.Command{
		Use:   "kkcard",
		Short: "Inspect Koikatu character cards",
		Long: `kkcard reads Koikatu character card PNGs and reports the card header,
the block index and the decoded block contents.

Settings are read from $XDG_CONFIG_HOME/kkcard/config.toml (or --config) and
can be overridden with flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.flags.configPath, "config", "c", "", "Configuration file path")
	flags.BoolVar(&ctx.flags.strict, "strict", false, "Fail on unsupported headers and bad blocks")
	flags.BoolVar(&ctx.flags.noPNG, "no-png", false, "Input has no leading PNG image (payload starts at offset 0)")
	flags.StringVar(&ctx.flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&ctx.flags.logFormat, "log-format", "", "Log format (console, json)")
	flags.BoolVar(&ctx.flags.noColor, "no-color", false, "Disable coloured output")

	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newHeaderCommand(ctx))
	rootCmd.AddCommand(newBlocksCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}

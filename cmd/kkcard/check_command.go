package main

import (
	"fmt"
	"github.com/go-andiamo/kkcard"
	"github.com/spf13/cobra"
	"log/slog"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Report whether each file is a character card",
		Long: `Report whether each file is a character card (a PNG followed by a readable card header).

Exits with a non-zero status if any file is not a card. With --strict, cards with
an unknown product header are not accepted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			options := ctx.parseOptions()
			notCards := 0
			for _, path := range args {
				hdr, err := ctx.checkFile(path, options)
				if err != nil {
					notCards++
					ctx.logger.Info("not a card", slog.String("file", path), slog.Any("error", err))
					fmt.Fprintf(out, "%s  %s  %s\n", ctx.failLabel("NOT A CARD"), path, err)
					continue
				}
				detail := hdr.Header
				if !kkcard.IsSupportedHeader(hdr.Header) {
					detail = ctx.warnLabel(fmt.Sprintf("%s (unsupported header)", hdr.Header))
				}
				fmt.Fprintf(out, "%s  %s  %s\n", ctx.okLabel("CARD"), path, detail)
			}
			if notCards > 0 {
				return fmt.Errorf("%d of %d files are not cards", notCards, len(args))
			}
			return nil
		},
	}
	return cmd
}

func (c *commandContext) checkFile(path string, options *kkcard.ParseOptions) (*kkcard.Header, error) {
	data, err := c.readFile(path)
	if err != nil {
		return nil, err
	}
	return kkcard.ParseHeader(data, options)
}

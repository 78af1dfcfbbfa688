package main

import (
	"fmt"
	"github.com/go-andiamo/kkcard"
	"github.com/spf13/cobra"
	"log/slog"
	"strconv"
	"strings"
)

type inspectResult struct {
	File    string               `json:"file"`
	Summary *kkcard.CardSummary  `json:"summary,omitempty"`
	Errors  []*kkcard.ParseError `json:"errors,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Summarize one or more character cards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := ctx.parseOptions()
			results := make([]inspectResult, 0, len(args))
			var failed []error
			for _, path := range args {
				card, err := ctx.parseFile(path, options)
				if err != nil {
					ctx.logger.Error("failed to parse card", slog.String("file", path), slog.Any("error", err))
					failed = append(failed, err)
					results = append(results, inspectResult{File: path, Error: err.Error()})
					continue
				}
				results = append(results, inspectResult{
					File:    path,
					Summary: kkcard.Summarize(card),
					Errors:  card.Errors,
				})
			}
			if jsonOutput {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ctx.renderInspect(results))
			}
			switch {
			case len(failed) == 1 && len(args) == 1:
				return failed[0]
			case len(failed) > 0:
				return fmt.Errorf("%d of %d files could not be parsed", len(failed), len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func (c *commandContext) renderInspect(results []inspectResult) string {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		if res.Summary == nil {
			rows = append(rows, []string{res.File, "", "", "", "", "", c.failLabel("error")})
			continue
		}
		s := res.Summary
		rows = append(rows, []string{
			res.File,
			s.Product,
			s.Header.Version,
			s.Name,
			birthdayString(s.Birthday),
			strings.Join(s.Blocks, ", "),
			c.inspectStatus(res),
		})
	}
	return renderTable(
		[]string{"File", "Product", "Version", "Name", "Birthday", "Blocks", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	)
}

func (c *commandContext) inspectStatus(res inspectResult) string {
	switch {
	case len(res.Errors) > 0:
		return c.warnLabel(fmt.Sprintf("%d block errors", len(res.Errors)))
	case !kkcard.IsSupportedHeader(res.Summary.Product):
		return c.warnLabel("unsupported header")
	}
	return c.okLabel("ok")
}

func birthdayString(b *kkcard.Birthday) string {
	if b == nil {
		return "-"
	}
	part := func(v *int64) string {
		if v == nil {
			return "?"
		}
		return strconv.FormatInt(*v, 10)
	}
	return part(b.Month) + "/" + part(b.Day)
}

package main

import (
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/go-andiamo/kkcard"
	"github.com/spf13/cobra"
	"strconv"
)

type headerResult struct {
	File string `json:"file"`
	*kkcard.Header
	Supported  bool `json:"supported"`
	FaceWidth  int  `json:"faceWidth,omitempty"`
	FaceHeight int  `json:"faceHeight,omitempty"`
}

func newHeaderCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "header <file>",
		Short: "Show the header of a character card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := ctx.readFile(path)
			if err != nil {
				return err
			}
			hdr, err := kkcard.ParseHeader(data, ctx.parseOptions())
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			res := headerResult{
				File:      path,
				Header:    hdr,
				Supported: kkcard.IsSupportedHeader(hdr.Header),
			}
			if cfg, err := hdr.FaceImageConfig(); err == nil {
				res.FaceWidth, res.FaceHeight = cfg.Width, cfg.Height
			}
			if jsonOutput {
				return writeJSON(cmd, res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ctx.renderHeader(res))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func (c *commandContext) renderHeader(res headerResult) string {
	supported := c.okLabel("yes")
	if !res.Supported {
		supported = c.warnLabel("no")
	}
	face := "none"
	switch {
	case res.FaceWidth > 0:
		face = fmt.Sprintf("%dx%d PNG (%s)", res.FaceWidth, res.FaceHeight, humanize.Bytes(uint64(len(res.FaceImage))))
	case len(res.FaceImage) > 0:
		face = fmt.Sprintf("%s (not a PNG)", humanize.Bytes(uint64(len(res.FaceImage))))
	}
	rows := [][]string{
		{"File", res.File},
		{"Product no", strconv.FormatInt(int64(res.ProductNo), 10)},
		{"Header", res.Header.Header},
		{"Version", res.Version},
		{"Supported", supported},
		{"Face image", face},
	}
	return renderTable([]string{"Field", "Value"}, rows, nil)
}

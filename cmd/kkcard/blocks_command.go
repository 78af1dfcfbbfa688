package main

import (
	"encoding/json"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"slices"
)

func newBlocksCommand(ctx *commandContext) *cobra.Command {
	var raw bool
	var blockName string
	var query string
	cmd := &cobra.Command{
		Use:   "blocks <file>",
		Short: "Dump the blocks of a character card as JSON",
		Long: `Dump the decoded blocks of a character card as JSON.

With --raw the undecoded block bytes are written instead (base64 encoded).
With --block only the named block is written.
With --query only the part of the output matching the path is written, e.g.

  kkcard blocks --query Parameter.lastname card.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			options := ctx.parseOptions()
			options.SkipBlockDecode = raw
			card, err := ctx.parseFile(path, options)
			if err != nil {
				return err
			}
			var result any
			if blockName == "" {
				if raw {
					result = card.RawBlockBytes
				} else {
					result = card.Blocks
				}
			} else if raw {
				if data, ok := card.RawBlockBytes[blockName]; ok {
					result = data
				}
			} else if v, ok := card.Block(blockName); ok {
				result = v
			}
			if result == nil {
				if slices.Contains(card.BlockNames(), blockName) {
					return fmt.Errorf("block %q in %s could not be read", blockName, path)
				}
				return fmt.Errorf("block %q not found in %s", blockName, path)
			}
			if query == "" {
				return writeJSON(cmd, result)
			}
			data, err := json.Marshal(result)
			if err != nil {
				return err
			}
			match := gjson.GetBytes(data, query)
			if !match.Exists() {
				return fmt.Errorf("query %q matched nothing in %s", query, path)
			}
			return writeJSON(cmd, json.RawMessage(match.Raw))
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Output raw (undecoded) block bytes")
	cmd.Flags().StringVar(&blockName, "block", "", "Only output the named block")
	cmd.Flags().StringVar(&query, "query", "", "Only output the value at this path (gjson syntax)")
	return cmd
}

package kkcard

import (
	"fmt"
)

// Known block names
const (
	BlockParameter  = "Parameter"
	BlockCustom     = "Custom"
	BlockCoordinate = "Coordinate"
	BlockStatus     = "Status"
	BlockKKEx       = "KKEx"
)

// BlockDecoder decodes the raw bytes of a block
type BlockDecoder func(raw []byte, info BlockInfo) (Value, error)

var defaultDecoders = map[string]BlockDecoder{
	BlockCustom:     customDecoder,
	BlockCoordinate: coordinateDecoder,
	BlockKKEx:       kkexDecoder(DefaultMaxKKExDepth),
}

func genericDecoder(raw []byte, _ BlockInfo) (Value, error) {
	return DecodeValue(raw)
}

type blocksResult struct {
	blocks   map[string]Value
	rawBytes map[string][]byte
	errors   []*ParseError
}

func parseBlocks(index []BlockInfo, rawBytes []byte, options *ParseOptions) (*blocksResult, error) {
	result := &blocksResult{
		blocks:   make(map[string]Value, len(index)),
		rawBytes: make(map[string][]byte, len(index)),
	}
	for _, info := range index {
		if !info.InBounds(len(rawBytes)) {
			perr := newParseError(ErrParseBlock,
				fmt.Sprintf("block %q exceeds raw data bounds (pos=%d, size=%d, total=%d)", info.Name, info.Pos, info.Size, len(rawBytes)),
				info.Name, nil)
			if options.Strict {
				return nil, perr
			}
			result.errors = append(result.errors, perr)
			continue
		}
		// copy so that the block doesn't alias the pool...
		raw := make([]byte, info.Size)
		copy(raw, rawBytes[info.Pos:info.End()])
		result.rawBytes[info.Name] = raw
		if options.SkipBlockDecode {
			continue
		}
		decoder := options.blockDecoder(info.Name)
		if decoder == nil {
			continue
		}
		v, err := decoder(raw, info)
		if err != nil {
			perr := newParseError(ErrParseBlock, fmt.Sprintf("failed to decode block %q", info.Name), info.Name, err)
			if options.Strict {
				return nil, perr
			}
			result.errors = append(result.errors, perr)
			continue
		}
		result.blocks[info.Name] = v
	}
	return result, nil
}

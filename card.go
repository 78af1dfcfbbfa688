package kkcard

import (
	"fmt"
	"io"
)

// ParseOptions represents the parsing options passed to ParseCard (and friends)
//
// a nil *ParseOptions is the same as the zero value - scan for the PNG, lenient, decode blocks
type ParseOptions struct {
	// SkipPNG indicates the data does not start with a PNG image (the card payload starts at offset 0)
	//
	// defaults to false - the leading PNG is located and skipped
	SkipPNG bool
	// Strict determines whether an unsupported header or a bad block fails the parse
	//
	// defaults to false - an unsupported header is flagged (Card.UnsupportedHeader) and bad blocks
	// are recorded in Card.Errors
	Strict bool
	// SkipBlockDecode determines whether block bodies are decoded
	//
	// when true, only Card.RawBlockBytes is populated
	SkipBlockDecode bool
	// BlockDecoders allows you to provide custom block decoders (or override default block decoders)
	//
	// a nil decoder for a block name disables decoding of that block
	BlockDecoders map[string]BlockDecoder
	// MaxKKExDepth is the nesting limit used when expanding KKEx blocks (defaults to DefaultMaxKKExDepth)
	MaxKKExDepth int
	// MaxInputSize limits how much ParseCardFrom will read (zero means no limit)
	MaxInputSize int64
}

var defaultOptions = &ParseOptions{}

func (o *ParseOptions) blockDecoder(name string) BlockDecoder {
	if decoder, ok := o.BlockDecoders[name]; ok {
		return decoder
	}
	if name == BlockKKEx && o.MaxKKExDepth > 0 {
		return kkexDecoder(o.MaxKKExDepth)
	}
	if decoder, ok := defaultDecoders[name]; ok {
		return decoder
	}
	return genericDecoder
}

// Card represents a parsed character card
//
// when not parsed in strict mode a Card may be partial - check Errors and UnsupportedHeader
type Card struct {
	// Header is the card header
	Header Header `json:"header"`
	// Blocks is the decoded blocks by name
	Blocks map[string]Value `json:"blocks"`
	// BlockIndex is the block index entries (in card order)
	BlockIndex []BlockInfo `json:"blockIndex"`
	// RawBlockBytes is the raw bytes of each block by name (blocks that were out of bounds are absent)
	RawBlockBytes map[string][]byte `json:"-"`
	// Errors is the block errors encountered (nil if none)
	Errors []*ParseError `json:"errors,omitempty"`
	// UnsupportedHeader is set when the header is not a known product identifier
	UnsupportedHeader bool `json:"unsupportedHeader,omitempty"`
}

// Block returns a decoded block by name
func (c *Card) Block(name string) (Value, bool) {
	v, ok := c.Blocks[name]
	return v, ok
}

// BlockNames returns the block index names (in card order, may contain duplicates)
func (c *Card) BlockNames() []string {
	result := make([]string, len(c.BlockIndex))
	for i, info := range c.BlockIndex {
		result[i] = info.Name
	}
	return result
}

func payloadOf(data []byte, options *ParseOptions) ([]byte, error) {
	if options.SkipPNG {
		return data, nil
	}
	offset, err := ScanPNGBoundary(data)
	if err != nil {
		return nil, err
	}
	return data[offset:], nil
}

// ParseHeader parses only the header of a card
//
// if the ParseOptions supplied is nil, default options are used
func ParseHeader(data []byte, options *ParseOptions) (*Header, error) {
	if options == nil {
		options = defaultOptions
	}
	payload, err := payloadOf(data, options)
	if err != nil {
		return nil, err
	}
	hdr, _, err := parseHeader(NewReader(payload, options.Strict), options.Strict)
	if err != nil {
		return nil, err
	}
	return &hdr, nil
}

// ParseCard parses a character card
//
// if the ParseOptions supplied is nil, default options are used
func ParseCard(data []byte, options *ParseOptions) (*Card, error) {
	if options == nil {
		options = defaultOptions
	}
	payload, err := payloadOf(data, options)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, newParseError(ErrNoCardPayload, "no card payload found after PNG data", "", nil)
	}
	r := NewReader(payload, options.Strict)
	hdr, unsupported, err := parseHeader(r, options.Strict)
	if err != nil {
		return nil, err
	}
	index, rawBytes, err := parseBlockIndex(r)
	if err != nil {
		return nil, err
	}
	blocks, err := parseBlocks(index, rawBytes, options)
	if err != nil {
		return nil, err
	}
	return &Card{
		Header:            hdr,
		Blocks:            blocks.blocks,
		BlockIndex:        index,
		RawBlockBytes:     blocks.rawBytes,
		Errors:            blocks.errors,
		UnsupportedHeader: unsupported,
	}, nil
}

// ParseCardFrom reads all of r and parses it as a character card
func ParseCardFrom(r io.Reader, options *ParseOptions) (*Card, error) {
	if options == nil {
		options = defaultOptions
	}
	if options.MaxInputSize > 0 {
		r = io.LimitReader(r, options.MaxInputSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if options.MaxInputSize > 0 && int64(len(data)) > options.MaxInputSize {
		return nil, fmt.Errorf("card data exceeds max input size (%d bytes)", options.MaxInputSize)
	}
	return ParseCard(data, options)
}

// ParseCardSummary parses a character card and returns its summary
//
// blocks are always decoded (ParseOptions.SkipBlockDecode is ignored)
func ParseCardSummary(data []byte, options *ParseOptions) (*CardSummary, error) {
	opts := ParseOptions{}
	if options != nil {
		opts = *options
	}
	opts.SkipBlockDecode = false
	card, err := ParseCard(data, &opts)
	if err != nil {
		return nil, err
	}
	return Summarize(card), nil
}

// IsCard reports whether data is a PNG followed by a readable card header
//
// the header is parsed leniently (unknown products are still cards) and blocks are not inspected
func IsCard(data []byte) bool {
	_, err := ParseHeader(data, nil)
	return err == nil
}

package kkcard

import (
	"bytes"
	"fmt"
)

var pngSignature = []byte{137, 80, 78, 71, 13, 10, 26, 10}

const pngChunkOverhead = 4 + 4 + 4 // length + type + CRC

// ScanPNGBoundary returns the offset immediately after the IEND chunk of the PNG at the start of data
//
// the returned offset is where the card payload begins
func ScanPNGBoundary(data []byte) (int, error) {
	if len(data) < len(pngSignature) {
		return 0, newParseError(ErrNoPNG, "data too short to contain PNG signature", "", nil)
	}
	if !bytes.Equal(data[:len(pngSignature)], pngSignature) {
		return 0, newParseError(ErrNoPNG, "invalid PNG signature", "", nil)
	}
	r := NewReader(data, false)
	r.offset = len(pngSignature)
	for r.Remaining() >= pngChunkOverhead {
		offset := r.Offset()
		length, _ := r.Uint32BE()
		chunkType := string(data[r.offset : r.offset+4])
		// length is untrusted - compare against what is left rather than adding to offset...
		if uint64(length) > uint64(len(data)-offset-pngChunkOverhead) {
			return 0, newParseError(ErrNoPNG, fmt.Sprintf("truncated PNG chunk %q at offset %d", chunkType, offset), "", nil)
		}
		end := offset + pngChunkOverhead + int(length)
		if chunkType == "IEND" {
			return end, nil
		}
		r.offset = end
	}
	return 0, newParseError(ErrNoPNG, "PNG IEND chunk not found", "", nil)
}

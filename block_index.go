package kkcard

import (
	"math"
	"strconv"
	"strings"
)

// BlockInfo is an entry of the card's block index - it locates a named block within the raw block bytes
type BlockInfo struct {
	Name    string `json:"name"`    // Name of the block (e.g. "Custom", "Parameter", "KKEx")
	Version string `json:"version"` // Version of the block format (selects the decoder for some blocks)
	Pos     int64  `json:"pos"`     // Pos is the offset into the raw block bytes
	Size    int64  `json:"size"`    // Size of the block data in bytes
}

// End returns Pos + Size (clamped rather than overflowing)
func (bi BlockInfo) End() int64 {
	if bi.Size > 0 && bi.Pos > math.MaxInt64-bi.Size {
		return math.MaxInt64
	}
	return bi.Pos + bi.Size
}

// InBounds reports whether the block lies within raw block bytes of the given length
func (bi BlockInfo) InBounds(length int) bool {
	return bi.Pos >= 0 && bi.Size >= 0 && bi.End() <= int64(length)
}

const blockIndexListKey = "lstInfo"

func parseBlockIndex(r *Reader) ([]BlockInfo, []byte, error) {
	indexData, err := r.LengthPrefixed(Width32)
	if err != nil {
		return nil, nil, newParseError(ErrNoCardPayload, "failed to read block index data", "", err)
	}
	decoded, err := DecodeValue(indexData)
	if err != nil {
		return nil, nil, newParseError(ErrNoCardPayload, "failed to decode block index", "", err)
	}
	lstInfo, ok := decoded.Get(blockIndexListKey)
	if !ok {
		return nil, nil, newParseError(ErrNoCardPayload, "block index missing "+blockIndexListKey+" list", "", nil)
	}
	items, ok := lstInfo.List()
	if !ok {
		return nil, nil, newParseError(ErrNoCardPayload, "block index "+blockIndexListKey+" is not a list", "", nil)
	}
	entries := make([]BlockInfo, len(items))
	for i, item := range items {
		entries[i] = blockInfoOf(item)
	}
	rawBytes, err := r.LengthPrefixed(Width64)
	if err != nil {
		return nil, nil, newParseError(ErrNoCardPayload, "failed to read raw block bytes", "", err)
	}
	return entries, rawBytes, nil
}

// blockInfoOf coerces an index entry - missing or unusable fields take their zero value
func blockInfoOf(v Value) BlockInfo {
	field := func(key string) Value {
		fv, _ := v.Get(key)
		return fv
	}
	return BlockInfo{
		Name:    coerceString(field("name")),
		Version: coerceString(field("version")),
		Pos:     coerceInt(field("pos")),
		Size:    coerceInt(field("size")),
	}
}

func coerceString(v Value) string {
	switch v.kind {
	case KindNil:
		return ""
	case KindString:
		return v.s
	case KindBinary:
		return string(v.bin)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindUint:
		return strconv.FormatUint(v.u, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return v.String()
}

func coerceInt(v Value) int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindUint:
		return math.MaxInt64
	case KindFloat:
		if math.IsNaN(v.f) {
			return 0
		} else if v.f >= math.MaxInt64 {
			return math.MaxInt64
		} else if v.f <= math.MinInt64 {
			return math.MinInt64
		}
		return int64(v.f)
	case KindBool:
		if v.b {
			return 1
		}
	case KindString:
		if i, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64); err == nil {
			return i
		}
	}
	return 0
}

// Package cards builds synthetic character cards for tests and examples
package cards

import (
	"bytes"
	"encoding/binary"
	"github.com/vmihailenco/msgpack/v5"
)

// MinimalPNG is a 1x1 RGBA PNG
var MinimalPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, // signature
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R', // IHDR, length 13
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00,
	0x1f, 0x15, 0xc4, 0x89,
	0x00, 0x00, 0x00, 0x0a, 'I', 'D', 'A', 'T', // IDAT, length 10
	0x78, 0x9c, 0x62, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01, 0xe5,
	0x27, 0xde, 0xfc, 0x07,
	0x00, 0x00, 0x00, 0x00, 'I', 'E', 'N', 'D', // IEND
	0xae, 0x42, 0x60, 0x82,
}

// Block is a block to be written into a card
type Block struct {
	Name    string
	Version string
	// Data is msgpack encoded unless Raw is set
	Data any
	// Raw, if not nil, is written as the block bytes as is
	Raw []byte
}

// Options describes the card to build - zero values take the defaults
type Options struct {
	ProductNo int32
	Header    string
	Version   string
	FaceImage []byte
	Blocks    []Block
	// HeaderOnly stops the payload after the version string
	HeaderOnly bool
	// Index, if not nil, replaces the generated block index entries
	Index []map[string]any
}

const (
	DefaultProductNo = 100
	DefaultHeader    = "【KoiKatuChara】"
	DefaultVersion   = "0.0.0"
)

// Payload builds a card payload (without the leading PNG)
func Payload(opts Options) []byte {
	if opts.ProductNo == 0 {
		opts.ProductNo = DefaultProductNo
	}
	if opts.Header == "" {
		opts.Header = DefaultHeader
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if opts.FaceImage == nil {
		opts.FaceImage = MinimalPNG
	}
	var pool bytes.Buffer
	index := make([]map[string]any, 0, len(opts.Blocks))
	for _, b := range opts.Blocks {
		data := b.Raw
		if data == nil {
			data = Encode(b.Data)
		}
		index = append(index, map[string]any{
			"name":    b.Name,
			"version": b.Version,
			"pos":     pool.Len(),
			"size":    len(data),
		})
		pool.Write(data)
	}
	if opts.Index != nil {
		index = opts.Index
	}
	indexData := Encode(map[string]any{"lstInfo": index})

	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, opts.ProductNo)
	buf.WriteByte(byte(len(opts.Header)))
	buf.WriteString(opts.Header)
	buf.WriteByte(byte(len(opts.Version)))
	buf.WriteString(opts.Version)
	if opts.HeaderOnly {
		return buf.Bytes()
	}
	buf.Write(Framed(opts.FaceImage))
	buf.Write(Framed(indexData))
	_ = binary.Write(&buf, binary.LittleEndian, int64(pool.Len()))
	buf.Write(pool.Bytes())
	return buf.Bytes()
}

// Card builds a full card (MinimalPNG followed by the payload)
func Card(opts Options) []byte {
	return append(bytes.Clone(MinimalPNG), Payload(opts)...)
}

// Encode msgpack encodes v (panics on failure - test data only)
func Encode(v any) []byte {
	data, err := msgpack.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

// Framed returns data prefixed with its int32 little-endian length
func Framed(data []byte) []byte {
	result := binary.LittleEndian.AppendUint32(nil, uint32(len(data)))
	return append(result, data...)
}

// FramedMsgpack msgpack encodes each value and concatenates them as framed sub-blobs
func FramedMsgpack(values ...any) []byte {
	var result []byte
	for _, v := range values {
		result = append(result, Framed(Encode(v))...)
	}
	return result
}

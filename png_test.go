package kkcard

import (
	"bytes"
	"github.com/go-andiamo/kkcard/_test_data/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestScanPNGBoundary(t *testing.T) {
	trailers := [][]byte{
		nil,
		{0},
		[]byte("IEND"),
		bytes.Repeat([]byte{0xff}, 100),
		cards.Payload(cards.Options{}),
		cards.MinimalPNG,
	}
	for _, trailer := range trailers {
		data := append(bytes.Clone(cards.MinimalPNG), trailer...)
		offset, err := ScanPNGBoundary(data)
		require.NoError(t, err)
		assert.Equal(t, len(cards.MinimalPNG), offset)
	}
}

func TestScanPNGBoundary_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		data    []byte
		wantErr string
	}{
		{
			name:    "empty",
			data:    nil,
			wantErr: "no PNG: data too short to contain PNG signature",
		},
		{
			name:    "short",
			data:    cards.MinimalPNG[:7],
			wantErr: "no PNG: data too short to contain PNG signature",
		},
		{
			name:    "not a PNG",
			data:    []byte("GIF89a\x00\x00\x00\x00"),
			wantErr: "no PNG: invalid PNG signature",
		},
		{
			name:    "signature only",
			data:    cards.MinimalPNG[:8],
			wantErr: "no PNG: PNG IEND chunk not found",
		},
		{
			name:    "truncated chunk",
			data:    cards.MinimalPNG[:50],
			wantErr: `no PNG: truncated PNG chunk "IDAT" at offset 33`,
		},
		{
			name:    "partial chunk header",
			data:    cards.MinimalPNG[:40],
			wantErr: "no PNG: PNG IEND chunk not found",
		},
		{
			name: "huge chunk length",
			data: append(bytes.Clone(cards.MinimalPNG[:8]),
				0xff, 0xff, 0xff, 0xff, 'I', 'D', 'A', 'T', 0, 0, 0, 0),
			wantErr: `no PNG: truncated PNG chunk "IDAT" at offset 8`,
		},
		{
			name:    "no IEND",
			data:    cards.MinimalPNG[:len(cards.MinimalPNG)-12],
			wantErr: "no PNG: PNG IEND chunk not found",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ScanPNGBoundary(tc.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNoPNG)
			assert.Equal(t, tc.wantErr, err.Error())
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, CodeNoPNG, perr.Code())
		})
	}
}

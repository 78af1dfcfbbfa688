package kkcard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"slices"
)

// Header represents the fixed header of a card payload
type Header struct {
	// ProductNo is the product number (e.g. 100 for Koikatu)
	ProductNo int32 `json:"productNo"`
	// Header is the product identifier (e.g. "【KoiKatuChara】")
	Header string `json:"header"`
	// Version is the card format version (e.g. "0.0.0")
	Version string `json:"version"`
	// FaceImage is the embedded face (thumbnail) image - nil if the card has none
	FaceImage []byte `json:"faceImage,omitempty"`
}

// FaceImageConfig returns the dimensions of the face image
func (h *Header) FaceImageConfig() (image.Config, error) {
	if len(h.FaceImage) == 0 {
		return image.Config{}, errors.New("card has no face image")
	}
	return png.DecodeConfig(bytes.NewReader(h.FaceImage))
}

const (
	HeaderKoikatu         = "【KoiKatuChara】"
	HeaderKoikatuSunshine = "【KoiKatuCharaSun】"
	HeaderKoikatuParty    = "【KoiKatuCharaSP】"
	HeaderEmotionCreators = "【Emocre】"
	HeaderHoneyCome       = "【HCChara】"
	HeaderHoneyComePlus   = "【HCPChara】"
	HeaderDigitalCraft    = "【DCChara】"
	HeaderSummerVacation  = "【SVChara】"
	HeaderAicomi          = "【ACChara】"
)

var supportedHeaders = []string{
	HeaderKoikatu,
	HeaderKoikatuSunshine,
	HeaderKoikatuParty,
	HeaderEmotionCreators,
	HeaderHoneyCome,
	HeaderHoneyComePlus,
	HeaderDigitalCraft,
	HeaderSummerVacation,
	HeaderAicomi,
}

// SupportedHeaders returns the known product identifiers
func SupportedHeaders() []string {
	return slices.Clone(supportedHeaders)
}

func IsSupportedHeader(header string) bool {
	return slices.Contains(supportedHeaders, header)
}

// parseHeader reads the card header - unsupported reports an unknown product identifier
// (only possible when not strict, strict mode returns ErrUnsupportedHeader)
func parseHeader(r *Reader, strict bool) (hdr Header, unsupported bool, err error) {
	if hdr.ProductNo, err = r.Int32LE(); err != nil {
		return Header{}, false, newParseError(ErrNoCardPayload, "failed to read product number", "", err)
	}
	if hdr.Header, err = r.LengthPrefixedString(Width8); err != nil {
		return Header{}, false, newParseError(ErrNoCardPayload, "failed to read header string", "", err)
	}
	if !IsSupportedHeader(hdr.Header) {
		if strict {
			return Header{}, false, newParseError(ErrUnsupportedHeader, fmt.Sprintf("%q", hdr.Header), "", nil)
		}
		unsupported = true
	}
	if hdr.Version, err = r.LengthPrefixedString(Width8); err != nil {
		return Header{}, false, newParseError(ErrNoCardPayload, "failed to read version string", "", err)
	}
	// face image is optional (in either mode)...
	if face, ferr := r.LengthPrefixed(Width32); ferr == nil {
		hdr.FaceImage = face
	}
	return hdr, unsupported, nil
}

package kkcard

import (
	"encoding/json"
	"errors"
)

// Error kinds - every error returned by ParseCard, ParseHeader and ScanPNGBoundary
// is a *ParseError that matches (errors.Is) exactly one of these
var (
	// ErrNoPNG is returned when the leading PNG container is missing or malformed
	ErrNoPNG = errors.New("no PNG")
	// ErrNoCardPayload is returned when a required header, index or pool field cannot be read
	ErrNoCardPayload = errors.New("no card payload")
	// ErrUnsupportedHeader is returned (strict mode only) for an unknown product header
	ErrUnsupportedHeader = errors.New("unsupported header")
	// ErrParseBlock is returned (strict mode) or collected (lenient mode) for a block
	// whose bounds or body are invalid
	ErrParseBlock = errors.New("parse block")
)

const (
	CodeNoPNG             = "ERR_NO_PNG"
	CodeNoCardPayload     = "ERR_NO_CARD_PAYLOAD"
	CodeUnsupportedHeader = "ERR_UNSUPPORTED_HEADER"
	CodeParseBlock        = "ERR_PARSE_BLOCK"
)

// ParseError is the error type produced while parsing a card
type ParseError struct {
	// Kind is one of ErrNoPNG, ErrNoCardPayload, ErrUnsupportedHeader or ErrParseBlock
	Kind error
	// Message describes the failure
	Message string
	// At is the block name the error relates to (empty if not block related)
	At string
	// Err is the underlying cause (may be nil)
	Err error
}

func newParseError(kind error, message string, at string, cause error) *ParseError {
	return &ParseError{
		Kind:    kind,
		Message: message,
		At:      at,
		Err:     cause,
	}
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error() + ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func (e *ParseError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		At      string `json:"at,omitempty"`
	}{
		Code:    e.Code(),
		Message: e.Error(),
		At:      e.At,
	})
}

// Code returns the stable string code for the error kind (e.g. "ERR_PARSE_BLOCK")
func (e *ParseError) Code() string {
	switch e.Kind {
	case ErrNoPNG:
		return CodeNoPNG
	case ErrNoCardPayload:
		return CodeNoCardPayload
	case ErrUnsupportedHeader:
		return CodeUnsupportedHeader
	case ErrParseBlock:
		return CodeParseBlock
	}
	return ""
}

// Package payload converts record keys and values between their text forms
// and raw bytes, and renders encoded records for output.
package payload

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/segmentio/ksuid"
)

// Text encodings accepted for keys and values
const (
	EncodingUTF8   = "utf8"
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

// Output formats for encoded records
const (
	FormatHex    = "hex"
	FormatBase64 = "base64"
	FormatRaw    = "raw"
)

var (
	ErrUnknownEncoding = errors.New("unknown payload encoding")
	ErrUnknownFormat   = errors.New("unknown output format")
)

// Decode turns s into bytes according to encoding. An empty encoding means utf8.
func Decode(s, encoding string) ([]byte, error) {
	switch encoding {
	case "", EncodingUTF8:
		return []byte(s), nil
	case EncodingHex:
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid hex payload: %w", err)
		}
		return b, nil
	case EncodingBase64:
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 payload: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}
}

// Format renders encoded bytes for output. Raw returns the bytes unchanged.
func Format(b []byte, format string) ([]byte, error) {
	switch format {
	case FormatHex:
		return []byte(hex.EncodeToString(b)), nil
	case FormatBase64:
		return []byte(base64.StdEncoding.EncodeToString(b)), nil
	case FormatRaw:
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// NewKey returns a fresh, time-ordered KSUID in its 27 character string form
func NewKey() []byte {
	return []byte(ksuid.New().String())
}

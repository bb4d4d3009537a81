package api

import (
	"fmt"

	"github.com/ssargent/brokercore/pkg/codec"
	"github.com/ssargent/brokercore/pkg/payload"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RecordRequest describes a record to encode. A key or value that is null or
// omitted is absent from the record; an empty string is present and empty.
type RecordRequest struct {
	Attributes    uint8   `json:"attributes"`
	Offset        int64   `json:"offset"`
	Timestamp     int64   `json:"timestamp"`
	Sequence      int32   `json:"sequence"`
	Key           *string `json:"key"`
	Value         *string `json:"value"`
	KeyEncoding   string  `json:"key_encoding,omitempty"`
	ValueEncoding string  `json:"value_encoding,omitempty"`
	GenerateKey   bool    `json:"generate_key,omitempty"`
}

// EncodeResponse carries an encoded record
type EncodeResponse struct {
	BodyLength    int    `json:"body_length"`
	EncodedLength int    `json:"encoded_length"`
	Encoding      string `json:"encoding"`
	Data          string `json:"data"`
	GeneratedKey  string `json:"generated_key,omitempty"`
}

// SizeResponse reports the sizes a record would encode to
type SizeResponse struct {
	BodyLength    int `json:"body_length"`
	EncodedLength int `json:"encoded_length"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port          int
	Bind          string
	APIKey        string // Empty disables API key checks
	DefaultFormat string // hex or base64, used when a request names none
}

// Build turns the request into a record. The generated key, if any, is
// returned so callers can report it.
func (req *RecordRequest) Build() (*codec.Record, []byte, error) {
	builder := codec.NewRecordBuilder().
		WithAttributes(req.Attributes).
		WithOffset(req.Offset).
		WithTimestamp(req.Timestamp).
		WithSequence(req.Sequence)

	var generated []byte
	switch {
	case req.GenerateKey && req.Key != nil:
		return nil, nil, fmt.Errorf("key and generate_key are mutually exclusive")
	case req.GenerateKey:
		generated = payload.NewKey()
		builder.WithKey(generated)
	case req.Key != nil:
		key, err := payload.Decode(*req.Key, req.KeyEncoding)
		if err != nil {
			return nil, nil, fmt.Errorf("key: %w", err)
		}
		builder.WithKey(key)
	}

	if req.Value != nil {
		value, err := payload.Decode(*req.Value, req.ValueEncoding)
		if err != nil {
			return nil, nil, fmt.Errorf("value: %w", err)
		}
		builder.WithValue(value)
	}

	return builder.Build(), generated, nil
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ssargent/brokercore/pkg/payload"
)

// maxRequestBody bounds the JSON body of a record request
const maxRequestBody = 16 << 20

// Server holds the API server state
type Server struct {
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(config ServerConfig, metrics *Metrics) *Server {
	if config.DefaultFormat == "" {
		config.DefaultFormat = payload.FormatHex
	}
	return &Server{
		config:  config,
		metrics: metrics,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleEncode encodes the posted record. format=raw answers with the record
// bytes as application/octet-stream, hex and base64 answer with JSON.
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = s.config.DefaultFormat
	}
	if format != payload.FormatHex && format != payload.FormatBase64 && format != payload.FormatRaw {
		s.metrics.RecordEncode("encode", false, 0, 0)
		sendError(w, fmt.Sprintf("Unknown format %q", format), http.StatusBadRequest)
		return
	}

	req, ok := s.decodeRecordRequest(w, r, "encode")
	if !ok {
		return
	}

	record, generated, err := req.Build()
	if err != nil {
		s.metrics.RecordEncode("encode", false, 0, 0)
		sendError(w, fmt.Sprintf("Invalid record: %v", err), http.StatusBadRequest)
		return
	}

	encoded := record.Encode()
	s.metrics.RecordEncode("encode", true, record.BodyLength(), len(encoded))

	if format == payload.FormatRaw {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("X-Record-Body-Length", fmt.Sprint(record.BodyLength()))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(encoded)
		return
	}

	data, err := payload.Format(encoded, format)
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, EncodeResponse{
		BodyLength:    record.BodyLength(),
		EncodedLength: len(encoded),
		Encoding:      format,
		Data:          string(data),
		GeneratedKey:  string(generated),
	})
}

func (s *Server) handleSize(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRecordRequest(w, r, "size")
	if !ok {
		return
	}

	record, _, err := req.Build()
	if err != nil {
		s.metrics.RecordEncode("size", false, 0, 0)
		sendError(w, fmt.Sprintf("Invalid record: %v", err), http.StatusBadRequest)
		return
	}

	s.metrics.RecordEncode("size", true, 0, 0)
	sendSuccess(w, SizeResponse{
		BodyLength:    record.BodyLength(),
		EncodedLength: record.EncodedLen(),
	})
}

func (s *Server) decodeRecordRequest(w http.ResponseWriter, r *http.Request, operation string) (*RecordRequest, bool) {
	var req RecordRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		s.metrics.RecordEncode(operation, false, 0, 0)
		sendError(w, fmt.Sprintf("Invalid JSON in request body: %v", err), http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

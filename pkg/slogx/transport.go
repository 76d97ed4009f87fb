package slogx

import (
	"log/slog"
	"net/http"
	"time"
)

// Transport logs every outbound call at debug level and transport failures
// at warn. It never touches the request or response.
type Transport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	logger := t.Logger
	if logger == nil {
		logger = FromContext(req.Context())
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)

	attrs := []any{
		"method", req.Method,
		"path", req.URL.Path,
		"req_id", req.Header.Get(RequestIDHeader),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		logger.Warn("http_call_failed", append(attrs, "err", err)...)
		return nil, err
	}

	logger.Debug("http_call", append(attrs, "status", resp.StatusCode)...)
	return resp, nil
}

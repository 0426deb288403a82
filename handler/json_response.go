package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/restkit/pkg/logger"
)

type jsonResponse struct {
	status int
	data   any
}

// Render encodes the data and logs the payload at debug level. Nil data
// produces an empty body.
func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	var body []byte
	if j.data != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(j.data); err != nil {
			return err
		}
		body = buf.Bytes()
	}

	LoggerFromContext(r.Context()).LogAttrs(r.Context(), slog.LevelDebug, "response",
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.Status(j.status),
		slog.Int("size", len(body)),
		slog.String("body", string(bytes.TrimSpace(body))),
	)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	_, err := w.Write(body)
	return err
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// JSON renders v as the response body, 200 OK unless an option says
// otherwise. Ordered maps keep their key order.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, data: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type errorResponse struct{ err error }

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }

// Error hands err to the error handler instead of rendering.
func Error(err error) Response {
	return errorResponse{err: err}
}

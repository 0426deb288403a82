package handler

import "net/http"

// EmptyResponse writes a status and headers without a body.
type EmptyResponse struct {
	status int
	header http.Header
}

// Empty responds 204 No Content.
func Empty() *EmptyResponse {
	return EmptyWithStatus(http.StatusNoContent)
}

func EmptyWithStatus(status int) *EmptyResponse {
	return &EmptyResponse{status: status, header: http.Header{}}
}

// Header adds a response header.
func (e *EmptyResponse) Header(key, value string) *EmptyResponse {
	e.header.Add(key, value)
	return e
}

func (e *EmptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	for key, values := range e.header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.WriteHeader(e.status)
	return nil
}

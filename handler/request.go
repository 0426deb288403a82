package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"slices"

	"github.com/dmitrymomot/restkit/core"
)

// SafeMethods never modify server state.
var SafeMethods = []string{http.MethodGet, http.MethodHead, http.MethodOptions}

// maxBodySize bounds JSON and form bodies.
const maxBodySize = 10 << 20

// Request adapts an *http.Request to what serializers and permissions need:
// the method, the query parameters and the submitted data.
type Request struct {
	r      *http.Request
	data   any
	err    error
	parsed bool
}

// NewRequest wraps r. The body is read lazily on the first Data call.
func NewRequest(r *http.Request) *Request {
	return &Request{r: r}
}

func (q *Request) HTTP() *http.Request     { return q.r }
func (q *Request) Method() string          { return q.r.Method }
func (q *Request) QueryParams() url.Values { return q.r.URL.Query() }
func (q *Request) IsSafe() bool            { return slices.Contains(SafeMethods, q.r.Method) }
func (q *Request) User() User              { return UserFromContext(q.r.Context()) }

// ContentType returns the request media type without parameters.
func (q *Request) ContentType() (string, error) {
	ct := q.r.Header.Get("Content-Type")
	if ct == "" {
		return "", nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	return mt, err
}

// Data returns the submitted data as a mapping. Safe methods read the query
// string; other methods decode a JSON or form body. Each parameter maps to
// its first value. An empty body yields an empty mapping.
func (q *Request) Data() (any, error) {
	if !q.parsed {
		q.data, q.err = q.parse()
		q.parsed = true
	}
	return q.data, q.err
}

func (q *Request) parse() (any, error) {
	if q.IsSafe() {
		return firstValues(q.r.URL.Query()), nil
	}

	ct, err := q.ContentType()
	if err != nil {
		return nil, core.ErrUnsupportedMediaType
	}

	switch ct {
	case "application/json", "":
		return q.parseJSON()
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := q.r.ParseMultipartForm(maxBodySize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, core.BadRequest(fmt.Sprintf("Form parse error - %s", err))
		}
		return firstValues(q.r.PostForm), nil
	}
	return nil, core.ErrUnsupportedMediaType.WithDetail(fmt.Sprintf("Unsupported media type %q in request.", ct))
}

func (q *Request) parseJSON() (any, error) {
	if q.r.Body == nil || q.r.Body == http.NoBody {
		return map[string]any{}, nil
	}
	var data any
	dec := json.NewDecoder(io.LimitReader(q.r.Body, maxBodySize))
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, errors.Join(ErrMalformedBody, core.BadRequest(fmt.Sprintf("JSON parse error - %s", err)))
	}
	return data, nil
}

func firstValues(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

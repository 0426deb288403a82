package articles

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/dmitrymomot/restkit/handler"
)

type apiUser struct{}

func (apiUser) IsAuthenticated() bool { return true }
func (apiUser) IsStaff() bool         { return true }

// APIKey authenticates requests carrying "Authorization: Bearer <key>".
// Other requests stay anonymous. An empty key authenticates nobody.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if ok && key != "" && subtle.ConstantTimeCompare([]byte(token), []byte(key)) == 1 {
				r = r.WithContext(handler.WithUser(r.Context(), apiUser{}))
			}
			next.ServeHTTP(w, r)
		})
	}
}

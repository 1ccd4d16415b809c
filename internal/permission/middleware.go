package permission

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shaharia-lab/themify/internal/api"
)

// Middleware evaluates the caller's capabilities once per request and stores
// them in the request context for Require.
func Middleware(ev Evaluator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithCapabilities(r.Context(), ev.Evaluate(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Require answers 403 unless the request holds every required capability.
// The wrapped handler is never invoked on failure.
func Require(required ...Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			missing := FromContext(r.Context()).Missing(required...)
			if len(missing) > 0 {
				api.WriteError(w, http.StatusForbidden, "Insufficient permissions", describe(missing))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func describe(missing []Capability) string {
	names := make([]string, len(missing))
	for i, c := range missing {
		names[i] = c.DisplayName()
	}
	return fmt.Sprintf("You need the following permissions to access this resource: %s", strings.Join(names, ", "))
}

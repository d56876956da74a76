package httpx

import (
	"net/http"
	"slices"
)

// RequireRole rejects requests whose verified claims lack the given role tag.
// Must run after AuthnMiddleware.
func RequireRole(role string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(rolesFromCtx(r.Context()), role) {
				WriteError(w, http.StatusForbidden, "unauthorized", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

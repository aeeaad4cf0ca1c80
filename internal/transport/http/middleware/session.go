package middleware

import (
	"net/http"
	"strings"

	"staffdesk/internal/domain/auth"
	"staffdesk/internal/platform/requestctx"
	"staffdesk/internal/transport/http/api"
)

// SessionChecker is the part of the session gate the HTTP layer needs.
type SessionChecker interface {
	IsAuthenticated() bool
	TokenMatches(candidate string) bool
	Identity() (auth.SessionIdentity, bool)
}

// RequireSession admits a request only while the gate is authenticated and the
// request carries the gate's token as a bearer credential.
func RequireSession(gate SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())
			if !gate.IsAuthenticated() {
				api.Fail(w, http.StatusUnauthorized, api.CodeUnauthorized, "authentication required", requestID)
				return
			}
			if !gate.TokenMatches(BearerToken(r)) {
				api.Fail(w, http.StatusUnauthorized, api.CodeInvalidToken, "session token is missing or does not match", requestID)
				return
			}
			ctx := r.Context()
			if identity, ok := gate.Identity(); ok {
				ctx = requestctx.WithActor(ctx, identity.Username)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

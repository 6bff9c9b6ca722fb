package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	payauth "github.com/payrail/payauth"
)

type authResultContextKey struct{}

// AuthResultFromContext returns the identity injected by [Guard], if any.
func AuthResultFromContext(ctx context.Context) (*payauth.AuthResult, bool) {
	res, ok := ctx.Value(authResultContextKey{}).(*payauth.AuthResult)
	return res, ok
}

// Guard returns middleware that rejects requests without a valid access
// token. The client IP is attached to the request context for rate limiting
// and audit before the engine is consulted.
func Guard(engine *payauth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := WithRequestClientIP(r)
			res, err := engine.ValidateAccess(ctx, token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx = context.WithValue(ctx, authResultContextKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns middleware that additionally requires the validated
// token to carry the given role.
func RequireRole(engine *payauth.Engine, role payauth.Role) func(http.Handler) http.Handler {
	guard := Guard(engine)
	return func(next http.Handler) http.Handler {
		return guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, ok := AuthResultFromContext(r.Context())
			if !ok || res.Role != string(role) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// WithRequestClientIP derives the request's remote IP and attaches it to the
// request context via [payauth.WithClientIP].
func WithRequestClientIP(r *http.Request) context.Context {
	ctx := r.Context()
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return ctx
	}
	return payauth.WithClientIP(ctx, host)
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}

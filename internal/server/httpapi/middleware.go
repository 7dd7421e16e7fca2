package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/AnandRajBind/Task-Management/internal/common"
	"github.com/AnandRajBind/Task-Management/internal/server/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity returns the authenticated caller attached by the access-token
// middleware, if any.
func Identity(ctx context.Context) (auth.TokenPayload, bool) {
	payload, ok := ctx.Value(identityKey).(auth.TokenPayload)
	return payload, ok
}

// accessTokenMiddleware guards protected routes. It requires an exact
// "Bearer <token>" authorization header and a verifiable access token;
// all verification failures collapse into one message so the response
// does not reveal which check failed. Token refresh is never attempted
// here; that is the client's job.
func (s *Server) accessTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get(common.AuthorizationHeaderName)
		if header == "" || !strings.HasPrefix(header, common.BearerPrefix) {
			writeFailure(w, http.StatusUnauthorized, "No token provided")
			return
		}

		payload, err := s.codec.VerifyAccess(strings.TrimPrefix(header, common.BearerPrefix))
		if err != nil {
			writeFailure(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, payload)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package auth

import (
	"net/http"
	"strings"

	"steward/core"
	"steward/handler/request"

	"github.com/fox-one/pkg/logger"
)

// HandleAuthentication resolve the bearer token into a user. Requests
// without a valid token pass through anonymously; handlers decide
// whether authentication is required.
func HandleAuthentication(session core.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx)

			accessToken := getBearerToken(r)
			if accessToken == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := session.Login(ctx, accessToken)
			if err != nil {
				log.WithError(err).Debugln("parse access token failed")
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(request.NewContext(ctx).WithUser(user)))
		}

		return http.HandlerFunc(fn)
	}
}

func getBearerToken(r *http.Request) string {
	s := r.Header.Get("Authorization")
	return strings.TrimPrefix(s, "Bearer ")
}

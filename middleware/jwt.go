package middleware

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/rs/zerolog"

	"github.com/studydeck/studydeck-api/auth"
	"github.com/studydeck/studydeck-api/config"
)

// EnsureValidToken builds the token-checking middleware for the configured
// auth mode. Requests without a resolvable identity are rejected before
// reaching any handler.
func EnsureValidToken(cfg config.Config, log zerolog.Logger) (func(http.Handler) http.Handler, error) {
	var validateToken jwtmiddleware.ValidateToken

	switch cfg.AuthMode {
	case config.AuthModeLocal:
		validateToken = auth.NewLocalValidator([]byte(cfg.JWTSecretKey)).ValidateToken
	default:
		issuerURL, err := url.Parse("https://" + cfg.Auth0Domain + "/")
		if err != nil {
			return nil, err
		}
		provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
		jwtValidator, err := validator.New(
			provider.KeyFunc,
			validator.RS256,
			issuerURL.String(),
			[]string{cfg.Auth0Audience},
		)
		if err != nil {
			return nil, err
		}
		validateToken = jwtValidator.ValidateToken
	}

	mw := jwtmiddleware.New(
		validateToken,
		jwtmiddleware.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			log.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected unauthenticated request")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"error":   "unauthenticated",
			})
		}),
	)

	return mw.CheckJWT, nil
}

// CallerID resolves the authenticated user's identity from the validated
// claims the token middleware stored on the request context. The client can
// never substitute its own identifier for this value.
func CallerID(r *http.Request) (string, bool) {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok || claims.RegisteredClaims.Subject == "" {
		return "", false
	}
	return claims.RegisteredClaims.Subject, true
}

package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Fadil369/Nphies-pro/pkg/respond"
)

const (
	actorHeader = "X-User-ID"
	roleHeader  = "X-User-Role"
)

var (
	errMissingAuthHeader = errors.New("missing authorization header")
	errBadAuthFormat     = errors.New("invalid authorization format")
	errInvalidToken      = errors.New("invalid token")
)

// Claims is the bearer-token payload produced by the upstream identity
// provider. Only the subject and role are consumed here.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// JWTConfig configures bearer-token resolution for non-development modes.
type JWTConfig struct {
	Issuer   string
	Audience string
	// SigningKey enables HMAC validation; production deployments supply the
	// shared secret from the identity provider.
	SigningKey []byte
}

// Middleware resolves the inbound principal into an AccessContext and stores
// it on the request context. cfg selects the resolution transport: with a
// signing key, the Authorization header must carry a valid bearer token;
// otherwise the X-User-ID / X-User-Role headers from the upstream gateway are
// trusted as-is (test and development harness behavior). Rejections use the
// same response envelope as every other endpoint.
func Middleware(resolver *Resolver, cfg JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actorID, roleHint, err := principalHint(c, cfg)
			if err != nil {
				return respond.Fail(c, http.StatusUnauthorized, err.Error())
			}

			ac, rerr := resolver.Resolve(actorID, roleHint)
			if rerr != nil {
				return respond.Fail(c, http.StatusForbidden, "unresolved principal")
			}

			c.SetRequest(c.Request().WithContext(ContextWithAccess(c.Request().Context(), ac)))
			return next(c)
		}
	}
}

func principalHint(c echo.Context, cfg JWTConfig) (actorID, roleHint string, err error) {
	if len(cfg.SigningKey) == 0 {
		return headerPrincipal(c)
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", "", errMissingAuthHeader
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", "", errBadAuthFormat
	}

	claims := &Claims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	token, perr := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		return cfg.SigningKey, nil
	}, opts...)
	if perr != nil || !token.Valid {
		return "", "", errInvalidToken
	}

	return claims.Subject, claims.Role, nil
}

func headerPrincipal(c echo.Context) (string, string, error) {
	actorID := c.Request().Header.Get(actorHeader)
	if actorID == "" {
		actorID = "anonymous"
	}
	return actorID, c.Request().Header.Get(roleHeader), nil
}

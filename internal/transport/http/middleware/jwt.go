package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postboard/internal/pkg/jwtutil"
	"postboard/internal/transport/http/response"
)

const ContextIdentityKey = "identity"

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errInvalidScheme        = errors.New("invalid authorization scheme")
)

// Identity is the authenticated caller. Only the auth middlewares create it.
type Identity struct {
	UserID   uint
	Username string
}

type identityCtxKey struct{}

type TokenParser interface {
	ParseToken(token string) (*jwtutil.Claims, error)
}

// AuthJWT rejects the request with 401 unless it carries a valid bearer token.
// Every failure produces the same response body.
func AuthJWT(tokens TokenParser, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := authenticate(c, tokens)
		if err != nil {
			logger.Debug("reject unauthenticated request",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "unauthorized")
			return
		}

		setIdentity(c, id)
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid token is present and otherwise lets the request through anonymously.
func OptionalAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := authenticate(c, tokens); err == nil {
			setIdentity(c, id)
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ContextIdentityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(Identity)
	return id, ok
}

func authenticate(c *gin.Context, tokens TokenParser) (Identity, error) {
	token, err := bearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return Identity{}, err
	}
	claims, err := tokens.ParseToken(token)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errMissingAuthorization
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errInvalidScheme
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingAuthorization
	}
	return token, nil
}

func setIdentity(c *gin.Context, id Identity) {
	c.Set(ContextIdentityKey, id)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), identityCtxKey{}, id))
}

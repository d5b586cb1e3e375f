package middleware

import (
	"errors"
	"strings"

	sharedContext "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/context"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)

var (
	ErrMissingToken  = sharedError.NewDomainError("MISSING_TOKEN")
	ErrInvalidToken  = sharedError.NewDomainError("INVALID_TOKEN")
	ErrExpiredToken  = sharedError.NewDomainError("EXPIRED_TOKEN")
	ErrInvalidClaims = sharedError.NewDomainError("INVALID_CLAIMS")
	ErrWrongKind     = sharedError.NewDomainError("WRONG_TOKEN_KIND")
)

// 클라이언트에는 원인을 구분하지 않고 동일한 응답을 준다.
func init() {
	for _, err := range []sharedError.DomainError{ErrMissingToken, ErrInvalidToken, ErrExpiredToken, ErrInvalidClaims, ErrWrongKind} {
		sharedError.RegisterDomainErrorResponse(err.Info(), sharedContext.Unauthenticated)
	}
}

// Verifier is the part of token.Manager the middleware needs.
type Verifier interface {
	ValidateToken(tokenString string) (*token.Claims, error)
}

// JWT admits requests carrying a valid access token and stores the operator's
// id, email, company and role in the gin context.
func JWT(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, step, err := authenticate(c, verifier)
		if err != nil {
			logger.FromContext(c.Request.Context()).Warn("인증 실패",
				"step", step,
				"error", err.Error(),
				"client_ip", c.ClientIP(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
			resp := sharedError.Resolve(err)
			if resp.Status == sharedError.InternalServerError.Status {
				resp = sharedContext.Unauthenticated
			}
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		c.Set(sharedContext.UserIDKey, claims.UserID)
		c.Set(sharedContext.UserEmailKey, claims.Email)
		c.Set(sharedContext.CompanyIDKey, claims.CompanyID)
		c.Set(sharedContext.RoleIDKey, claims.RoleID)

		ctx := logger.WithActor(c.Request.Context(), claims.UserID)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With("user_id", claims.UserID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func authenticate(c *gin.Context, verifier Verifier) (*token.Claims, string, error) {
	raw, err := bearerToken(c.GetHeader(AuthorizationHeader))
	if err != nil {
		return nil, "extract_token", err
	}

	claims, err := verifier.ValidateToken(raw)
	if err != nil {
		return nil, "validate_token", translateTokenError(err)
	}

	// refresh token으로는 API 호출 불가
	if claims.TokenType != token.ACCESS {
		return nil, "token_kind", ErrWrongKind
	}
	return claims, "", nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	scheme, raw, ok := strings.Cut(header, " ")
	raw = strings.TrimSpace(raw)
	if !ok || !strings.EqualFold(scheme, BearerScheme) || raw == "" {
		return "", ErrInvalidToken
	}
	return raw, nil
}

func translateTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrExpiredToken):
		return ErrExpiredToken
	case errors.Is(err, token.ErrInvalidClaims):
		return ErrInvalidClaims
	default:
		return ErrInvalidToken
	}
}

package token

import (
	"errors"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("token: invalid token")
	ErrExpiredToken  = errors.New("token: expired token")
	ErrInvalidClaims = errors.New("token: invalid claims")
)

const (
	ACCESS  = "access"
	REFRESH = "refresh"
)

// Subject is the operator a token speaks for.
type Subject struct {
	UserID    string
	Email     string
	CompanyID string
	RoleID    string
}

// Claims carries the operator's company and role so handlers can scope requests
// without another lookup.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	CompanyID string `json:"company_id,omitempty"`
	RoleID    string `json:"role_id,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func (c *Claims) Operator() Subject {
	return Subject{UserID: c.UserID, Email: c.Email, CompanyID: c.CompanyID, RoleID: c.RoleID}
}

type Manager interface {
	GenerateAccessToken(subject Subject) (string, error)
	GenerateRefreshToken(subject Subject) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTManager struct {
	secret        []byte
	issuer        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	leeway        time.Duration
	now           func() time.Time
}

type Option func(*JWTManager)

// WithClock replaces time.Now for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(m *JWTManager) { m.now = now }
}

func NewJWTManager(cfg *config.Config, opts ...Option) *JWTManager {
	m := &JWTManager{
		secret:        []byte(cfg.JWT.Secret),
		issuer:        cfg.App.Name,
		accessExpiry:  cfg.JWT.Expiry,
		refreshExpiry: cfg.JWT.RefreshExpiry,
		leeway:        5 * time.Second,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *JWTManager) GenerateAccessToken(subject Subject) (string, error) {
	return m.sign(subject, ACCESS, m.accessExpiry)
}

func (m *JWTManager) GenerateRefreshToken(subject Subject) (string, error) {
	return m.sign(subject, REFRESH, m.refreshExpiry)
}

func (m *JWTManager) sign(subject Subject, kind string, ttl time.Duration) (string, error) {
	if subject.UserID == "" {
		return "", ErrInvalidClaims
	}

	issuedAt := m.now()
	claims := Claims{
		UserID:    subject.UserID,
		Email:     subject.Email,
		CompanyID: subject.CompanyID,
		RoleID:    subject.RoleID,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject.UserID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ValidateToken checks signature, issuer and lifetime. The token kind is left to the caller.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(m.leeway),
		jwt.WithTimeFunc(m.now),
	)

	claims := &Claims{}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
			return nil, ErrInvalidClaims
		default:
			return nil, ErrInvalidToken
		}
	}

	if claims.UserID == "" || claims.UserID != claims.RegisteredClaims.Subject {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

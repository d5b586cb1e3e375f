package token_test

import (
	"testing"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/testutil"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var operator = token.Subject{UserID: "u-1", Email: "kim@acme.test", CompanyID: "c-1", RoleID: "MANAGER"}

func TestJWTManager_RoundTripKeepsScope(t *testing.T) {
	// Given
	manager := token.NewJWTManager(testutil.NewTestConfig())

	// When
	raw, err := manager.GenerateAccessToken(operator)
	require.NoError(t, err)
	claims, err := manager.ValidateToken(raw)

	// Then
	require.NoError(t, err)
	assert.Equal(t, operator, claims.Operator())
	assert.Equal(t, token.ACCESS, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTManager_Expired(t *testing.T) {
	// Given: Token issued two days ago
	cfg := testutil.NewTestConfig()
	issuedAt := time.Now().Add(-48 * time.Hour)
	old := token.NewJWTManager(cfg, token.WithClock(func() time.Time { return issuedAt }))
	raw, err := old.GenerateAccessToken(operator)
	require.NoError(t, err)

	// When
	_, err = token.NewJWTManager(cfg).ValidateToken(raw)

	// Then
	assert.ErrorIs(t, err, token.ErrExpiredToken)
}

func TestJWTManager_Rejects(t *testing.T) {
	cfg := testutil.NewTestConfig()
	manager := token.NewJWTManager(cfg)

	otherIssuer := testutil.NewTestConfig()
	otherIssuer.App.Name = "someone-else"
	foreign, err := token.NewJWTManager(otherIssuer).GenerateAccessToken(operator)
	require.NoError(t, err)

	otherSecret := testutil.NewTestConfig()
	otherSecret.JWT.Secret = "a-completely-different-secret-value"
	forged, err := token.NewJWTManager(otherSecret).GenerateAccessToken(operator)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, token.Claims{UserID: "u-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	testCases := []struct {
		name string
		raw  string
		want error
	}{
		{name: "garbage", raw: "not-a-jwt", want: token.ErrInvalidToken},
		{name: "other issuer", raw: foreign, want: token.ErrInvalidClaims},
		{name: "other secret", raw: forged, want: token.ErrInvalidToken},
		{name: "alg none", raw: unsigned, want: token.ErrInvalidToken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := manager.ValidateToken(tc.raw)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestJWTManager_RequiresSubject(t *testing.T) {
	manager := token.NewJWTManager(testutil.NewTestConfig())

	_, err := manager.GenerateRefreshToken(token.Subject{Email: "nobody@acme.test"})

	assert.ErrorIs(t, err, token.ErrInvalidClaims)
}

package testutil

import (
	"fmt"
	"sync"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/token"
)

// StubTokenManager issues predictable tokens ("access:<userID>", "refresh:<userID>")
// and remembers who they were issued for. Setting Err makes every call fail.
type StubTokenManager struct {
	Err error

	mu     sync.Mutex
	issued []string
}

var _ token.Manager = (*StubTokenManager)(nil)

func NewStubTokenManager() *StubTokenManager {
	return &StubTokenManager{}
}

func (m *StubTokenManager) GenerateAccessToken(subject token.Subject) (string, error) {
	return m.issue(token.ACCESS, subject.UserID)
}

func (m *StubTokenManager) GenerateRefreshToken(subject token.Subject) (string, error) {
	return m.issue(token.REFRESH, subject.UserID)
}

// ValidateToken reverses the access format only.
func (m *StubTokenManager) ValidateToken(tokenString string) (*token.Claims, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var userID string
	if _, err := fmt.Sscanf(tokenString, token.ACCESS+":%s", &userID); err != nil {
		return nil, token.ErrInvalidToken
	}
	return &token.Claims{UserID: userID, TokenType: token.ACCESS}, nil
}

// Issued lists the subjects tokens were generated for, in call order.
func (m *StubTokenManager) Issued() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.issued...)
}

func (m *StubTokenManager) issue(kind, userID string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	m.issued = append(m.issued, userID)
	m.mu.Unlock()
	return kind + ":" + userID, nil
}

package auth

import (
	"context"
	"fmt"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/token"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/user"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users        *user.Repository
	tokenManager token.Manager
}

func NewAuthService(users *user.Repository, tokenManager token.Manager) *AuthService {
	return &AuthService{
		users:        users,
		tokenManager: tokenManager,
	}
}

func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	// 1. Find user by email
	account, ok, err := a.users.FindByEmail(ctx, request.Email)
	if err != nil {
		log.Error("로그인 실패 - 알 수 없는 오류", "error", err)
		return nil, fmt.Errorf("로그인 실패: %w", err)
	}
	if !ok {
		log.Warn("로그인 실패 - user email not found", "email", logger.MaskEmail(request.Email))
		return nil, fmt.Errorf("error %w", ErrInCorrectEmailPassword) // Security: don't reveal if email exists
	}

	// 2. Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(request.Password)); err != nil {
		log.Warn("로그인 실패 - invalid password", "email", logger.MaskEmail(request.Email))
		return nil, fmt.Errorf("error %w", ErrInCorrectEmailPassword)
	}

	// 3. Only active accounts may sign in
	if account.Status != model.StatusActive {
		log.Warn("로그인 실패 - inactive user", "email", logger.MaskEmail(request.Email), "status", account.Status.String())
		return nil, fmt.Errorf("status=%s %w", account.Status, ErrUserNotActive)
	}

	// 4. Generate JWT tokens scoped to the account's company and role
	subject := token.Subject{
		UserID:    account.ID,
		Email:     account.Email,
		CompanyID: account.CompanyID,
		RoleID:    account.RoleID,
	}
	accessToken, err := a.tokenManager.GenerateAccessToken(subject)
	if err != nil {
		log.Error("access token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := a.tokenManager.GenerateRefreshToken(subject)
	if err != nil {
		log.Error("refresh token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	log.Info("로그인 성공", "email", logger.MaskEmail(request.Email))

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/company"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/config"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/role"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/user"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the operator company, role and account from cfg when they do not exist yet.
// Without it nobody could obtain the first token. An empty email disables seeding.
func SeedAdmin(ctx context.Context, cfg config.AdminConfig, companies *company.Repository, roles *role.Repository, users *user.Repository) error {
	if cfg.Email == "" {
		return nil
	}

	owner, ok, err := companies.FindByCode(ctx, cfg.CompanyCode)
	if err != nil {
		return fmt.Errorf("find admin company: %w", err)
	}
	if !ok {
		owner, err = companies.Save(ctx, *model.NewCompany(cfg.CompanyCode, cfg.CompanyName))
		if err != nil {
			return fmt.Errorf("create admin company: %w", err)
		}
		slog.Info("관리자 회사 생성", "code", owner.Code)
	}

	roleCode := model.NormalizeRoleCode(cfg.RoleCode)
	exists, err := roles.ExistsByCode(ctx, roleCode)
	if err != nil {
		return fmt.Errorf("check admin role: %w", err)
	}
	if !exists {
		if _, err := roles.Save(ctx, model.Role{ID: roleCode, Name: "Administrator"}); err != nil {
			return fmt.Errorf("create admin role: %w", err)
		}
		slog.Info("관리자 역할 생성", "code", roleCode)
	}

	exists, err = users.ExistsByEmail(ctx, cfg.Email)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if exists {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := model.NewUser(owner.ID, roleCode, "Administrator", user.NormalizeEmail(cfg.Email), "", string(hashedPassword))
	if _, err := users.Save(ctx, *admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	slog.Info("관리자 계정 생성", "email", cfg.Email)
	return nil
}

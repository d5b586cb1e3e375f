package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/config"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"

	"gorm.io/gorm"
)

var ErrMigrateInProduction = errors.New("PRODUCTION 환경에서는 DB_AUTO_MIGRATE=true를 사용할 수 없습니다")

// Migrate drops and recreates every table when DB_AUTO_MIGRATE is on.
// model.All lists parents before children, so drops run in reverse.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.IsAutoMigrate {
		slog.Info("⏭️  데이터베이스 마이그레이션 비활성화됨", "env", cfg.App.Env)
		return nil
	}
	if cfg.IsProduction() {
		return ErrMigrateInProduction
	}

	slog.Warn("🔧 데이터베이스 마이그레이션 시작 - 모든 테이블이 삭제되고 재생성됩니다!", "env", cfg.App.Env)

	models := model.All()
	if err := dropAll(db.Migrator(), models); err != nil {
		return err
	}
	if err := createAll(db, models); err != nil {
		return fmt.Errorf("테이블 생성 실패: %w", err)
	}

	slog.Info("✅ 마이그레이션 완료!", "tables", len(models))
	return nil
}

func dropAll(migrator gorm.Migrator, models []model.Record) error {
	for i := len(models) - 1; i >= 0; i-- {
		m := models[i]
		if !migrator.HasTable(m) {
			continue
		}
		if err := migrator.DropTable(m); err != nil {
			return fmt.Errorf("%s 테이블 삭제 실패: %w", m.TableName(), err)
		}
		slog.Debug("테이블 삭제", "table", m.TableName())
	}
	return nil
}

func createAll(db *gorm.DB, models []model.Record) error {
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("%s: %w", m.TableName(), err)
		}
		slog.Debug("테이블 생성", "table", m.TableName())
	}
	return nil
}

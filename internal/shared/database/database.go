package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/config"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/logger"

	oracle "github.com/godoes/gorm-oracle"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB wraps the GORM database instance
type DB struct {
	*gorm.DB
	driver string
}

// New opens the configured driver, tunes the pool and migrates when enabled.
func New(cfg *config.Config) (*DB, error) {
	dialector, err := newDialector(cfg.Database)
	if err != nil {
		return nil, err
	}
	return Open(dialector, cfg)
}

// Open connects through the given dialector, configures the pool and runs migration.
// Tests pass their own sqlite dialector here so they share the production setup.
func Open(dialector gorm.Dialector, cfg *config.Config) (*DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newLogger(cfg),
		SkipDefaultTransaction: true, // 모든 쓰기는 단일 auto-commit 문장, BEGIN/COMMIT 왕복 생략
		NowFunc:                model.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 인스턴스 가져오기 실패: %w", err)
	}
	tune(sqlDB, cfg.Database)

	if err := ping(sqlDB, cfg.Database.AcquireTimeout); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	slog.Info("데이터베이스 연결 성공",
		"driver", dialector.Name(),
		"host", cfg.Database.Host,
		"service", cfg.Database.Service,
		"dsn", logger.MaskDSN(cfg.Database.DSN),
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if err := Migrate(db, cfg); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("마이그레이션 실패: %w", err)
	}

	return &DB{DB: db, driver: dialector.Name()}, nil
}

// tune applies the bounds database/sql enforces for every acquire.
func tune(sqlDB *sql.DB, cfg config.DatabaseConfig) {
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}

func ping(sqlDB *sql.DB, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("데이터베이스 핑 실패: %w", err)
	}
	return nil
}

// dialectors maps DB_DRIVER to a gorm dialector built from the config.
var dialectors = map[string]func(cfg config.DatabaseConfig) gorm.Dialector{
	config.DriverPostgres: func(cfg config.DatabaseConfig) gorm.Dialector { return postgres.Open(postgresDSN(cfg)) },
	config.DriverOracle:   func(cfg config.DatabaseConfig) gorm.Dialector { return oracle.Open(oracleDSN(cfg)) },
	config.DriverSQLite:   func(cfg config.DatabaseConfig) gorm.Dialector { return sqlite.Open(SQLiteDSN(cfg.DSN)) },
}

func newDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	build, ok := dialectors[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("지원하지 않는 데이터베이스 드라이버: %q", cfg.Driver)
	}
	return build(cfg), nil
}

// postgresDSN returns DB_DSN as is, otherwise a postgres:// URL in UTC.
func postgresDSN(cfg config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return serverURL("postgres", cfg, url.Values{
		"sslmode":  {cfg.SSLMode},
		"TimeZone": {"UTC"},
	})
}

// oracleDSN returns DB_DSN as is, otherwise an oracle:// URL with SSL (Oracle Cloud ATP 기본값).
func oracleDSN(cfg config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return serverURL("oracle", cfg, url.Values{"SSL": {"true"}})
}

// serverURL escapes user and password, which often carry special characters.
func serverURL(scheme string, cfg config.DatabaseConfig, query url.Values) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Service,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// SQLiteDSN enables foreign key enforcement, which sqlite leaves off per connection by default.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}
	return dsn + separator + "_foreign_keys=on"
}

// Driver returns the dialector name (postgres, oracle, sqlite)
func (db *DB) Driver() string {
	return db.driver
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("데이터베이스 인스턴스 가져오기 실패: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("데이터베이스 종료 실패: %w", err)
	}
	slog.Info("데이터베이스 연결이 종료되었습니다", "driver", db.driver)
	return nil
}

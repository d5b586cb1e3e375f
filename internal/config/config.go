package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Server   ServerConfig
	Events   EventsConfig
	Metrics  MetricsConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     int
	LogLevel string // debug | info | warn | error, 비어 있으면 env 기본값
}

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverOracle   = "oracle"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver          string // postgres | oracle | sqlite
	DSN             string // 설정 시 Host/Port/... 대신 사용 (sqlite는 파일 경로 또는 file: URI)
	Host            string
	Port            int
	Service         string // oracle service name 또는 postgres database name
	User            string
	Password        string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	AcquireTimeout  time.Duration // pool에서 커넥션을 기다리는 최대 시간
	SlowThreshold   time.Duration // 이보다 오래 걸린 SQL은 warn
	IsAutoMigrate   bool          // true: 테이블 재생성, false: 마이그레이션 비활성화
}

type EventsConfig struct {
	NATSURL       string // 비어 있으면 이벤트 발행 비활성화
	SubjectPrefix string
}

type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

// AdminConfig seeds the first operator account. Email가 비어 있으면 시드하지 않음.
type AdminConfig struct {
	Email       string
	Password    string
	CompanyCode string
	CompanyName string
	RoleCode    string
}

type JWTConfig struct {
	Secret        string
	Expiry        time.Duration
	RefreshExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
	RequestTimeout  time.Duration // 요청 하나의 처리 deadline
}

// Load reads .env.<env> (if any) and the process environment, then validates the result.
func Load(env string) (*Config, error) {
	if err := loadEnvFile(env); err != nil {
		return nil, fmt.Errorf("환경 변수 로드 실패: %w", err)
	}

	r := &envReader{}
	cfg := &Config{
		App:      loadApp(r, env),
		Database: loadDatabase(r),
		JWT:      loadJWT(r),
		CORS:     loadCORS(r),
		Server:   loadServer(r),
		Events:   EventsConfig{NATSURL: r.str("NATS_URL", ""), SubjectPrefix: r.str("NATS_SUBJECT_PREFIX", "budget-admin")},
		Metrics:  MetricsConfig{Enabled: r.asBool("METRICS_ENABLED", true), Namespace: r.str("METRICS_NAMESPACE", "budget_admin")},
		Admin:    loadAdmin(r),
	}
	if err := r.err(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("환경 변수 검증 실패 : %w", err)
	}
	return cfg, nil
}

func loadApp(r *envReader, env string) AppConfig {
	return AppConfig{
		Name:     r.str("APP_NAME", "budget-admin-api"),
		Env:      env,
		Port:     r.asInt("APP_PORT", 8080),
		LogLevel: r.str("LOG_LEVEL", ""),
	}
}

func loadDatabase(r *envReader) DatabaseConfig {
	return DatabaseConfig{
		Driver:          strings.ToLower(r.str("DB_DRIVER", DriverPostgres)),
		DSN:             r.str("DB_DSN", ""),
		Host:            r.str("DB_HOST", ""),
		Port:            r.asInt("DB_PORT", 5432),
		Service:         r.str("DB_SERVICE", ""),
		User:            r.str("DB_USER", ""),
		Password:        r.str("DB_PASSWORD", ""),
		SSLMode:         r.str("DB_SSL_MODE", "require"),
		MaxIdleConns:    r.asInt("DB_MAX_IDLE_CONNS", 10),
		MaxOpenConns:    r.asInt("DB_MAX_OPEN_CONNS", 50),
		ConnMaxLifetime: r.asDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime: r.asDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
		AcquireTimeout:  r.asDuration("DB_ACQUIRE_TIMEOUT", 5*time.Second),
		SlowThreshold:   r.asDuration("DB_SLOW_THRESHOLD", 200*time.Millisecond),
		IsAutoMigrate:   r.asBool("DB_AUTO_MIGRATE", false),
	}
}

func loadJWT(r *envReader) JWTConfig {
	return JWTConfig{
		Secret:        r.str("JWT_SECRET", ""),
		Expiry:        r.asDuration("JWT_EXPIRY", 24*time.Hour),
		RefreshExpiry: r.asDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
	}
}

func loadCORS(r *envReader) CORSConfig {
	return CORSConfig{
		AllowedOrigins:   r.asList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		AllowedMethods:   r.asList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:   r.asList("CORS_ALLOWED_HEADERS", []string{"*"}),
		AllowCredentials: r.asBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           r.asInt("CORS_MAX_AGE", 86400),
	}
}

func loadServer(r *envReader) ServerConfig {
	return ServerConfig{
		ReadTimeout:     r.asDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    r.asDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     r.asDuration("SERVER_IDLE_TIMEOUT", time.Minute),
		GracefulTimeout: r.asDuration("GRACEFUL_TIMEOUT", 30*time.Second),
		RequestTimeout:  r.asDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
	}
}

func loadAdmin(r *envReader) AdminConfig {
	return AdminConfig{
		Email:       r.str("ADMIN_EMAIL", ""),
		Password:    r.str("ADMIN_PASSWORD", ""),
		CompanyCode: r.str("ADMIN_COMPANY_CODE", "SYSTEM"),
		CompanyName: r.str("ADMIN_COMPANY_NAME", "System"),
		RoleCode:    r.str("ADMIN_ROLE_CODE", "ADMIN"),
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var problems []string
	if c.App.Port < 1 || c.App.Port > 65535 {
		problems = append(problems, "유효하지 않은 포트 번호")
	}
	problems = append(problems, c.Database.problems()...)
	if c.Server.RequestTimeout <= 0 {
		problems = append(problems, "SERVER_REQUEST_TIMEOUT는 0보다 커야 합니다")
	}
	if len(c.JWT.Secret) < 32 {
		problems = append(problems, "JWT Secret Key는 32자 이상이어야 합니다")
	}
	if c.Admin.Email != "" && len(c.Admin.Password) < 8 {
		problems = append(problems, "ADMIN_PASSWORD는 8자 이상이어야 합니다")
	}

	if len(problems) > 0 {
		return fmt.Errorf("유효성 검사 오류: %s", strings.Join(problems, ", "))
	}
	return nil
}

func (d DatabaseConfig) problems() []string {
	var problems []string
	switch d.Driver {
	case DriverPostgres, DriverOracle:
		if d.DSN != "" {
			break
		}
		for _, required := range []struct{ name, value string }{
			{"Host", d.Host}, {"Service", d.Service}, {"User", d.User}, {"Password", d.Password},
		} {
			if required.value == "" {
				problems = append(problems, fmt.Sprintf("데이터베이스 %s가 필요합니다 (또는 DB_DSN)", required.name))
			}
		}
	case DriverSQLite:
		if d.DSN == "" {
			problems = append(problems, "sqlite는 DB_DSN이 필요합니다")
		}
	default:
		problems = append(problems, fmt.Sprintf("지원하지 않는 데이터베이스 드라이버: %q", d.Driver))
	}
	if d.MaxOpenConns < 1 {
		problems = append(problems, "DB_MAX_OPEN_CONNS는 1 이상이어야 합니다")
	}
	if d.MaxIdleConns > d.MaxOpenConns {
		problems = append(problems, "DB_MAX_IDLE_CONNS는 DB_MAX_OPEN_CONNS 이하여야 합니다")
	}
	return problems
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "local" || c.App.Env == "dev"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "prod" || c.App.Env == "production"
}

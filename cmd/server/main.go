package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/auth"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/bootstrap"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/company"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/config"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/role"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/router"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/events"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/metrics"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/validator"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/user"
)

func main() {
	env := flag.String("env", "local", "Environment (local|dev|prod)")
	flag.Parse()

	logger.Setup(*env)
	slog.Info("서버 초기화 시작", "env", *env)

	// SIGINT/SIGTERM이 오면 ctx가 취소되고 graceful shutdown으로 넘어간다
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *env); err != nil {
		slog.Error("서버 실행 실패", "error", err)
		stop()
		os.Exit(1)
	}
	slog.Info("서버 종료 완료", "env", *env)
}

// infra holds the process-wide resources every request shares.
type infra struct {
	pool      *database.Pool
	metrics   *metrics.Metrics
	publisher events.Publisher
}

// close releases resources in reverse order of acquisition.
func (i *infra) close() {
	if i.publisher != nil {
		i.publisher.Close()
	}
	if i.pool != nil {
		if err := i.pool.Close(); err != nil {
			slog.Error("데이터베이스 종료 실패", "error", err)
		}
	}
}

func run(ctx context.Context, env string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}
	if err := logger.SetLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("로그 레벨 설정 실패: %w", err)
	}
	slog.Info("설정 로드 완료", "driver", cfg.Database.Driver, "log_level", logger.Level().String())

	deps, err := openInfra(cfg)
	defer deps.close()
	if err != nil {
		return err
	}

	if err := auth.SeedAdmin(ctx, cfg.Admin,
		company.NewRepository(deps.pool), role.NewRepository(deps.pool), user.NewRepository(deps.pool),
	); err != nil {
		return fmt.Errorf("관리자 계정 시드 실패: %w", err)
	}

	if err := validator.RegisterAll(); err != nil {
		return fmt.Errorf("공통 Validator 등록 실패: %w", err)
	}

	engine := bootstrap.NewBootstrap(cfg, deps.metrics).SetupEngine()
	router.Setup(engine, cfg, deps.pool, deps.metrics, deps.publisher)

	return serve(ctx, bootstrap.New(cfg, engine), cfg.Server.GracefulTimeout)
}

// openInfra connects the database, pool, metrics and publisher. The returned
// infra is always safe to close, even when an error is returned.
func openInfra(cfg *config.Config) (*infra, error) {
	deps := &infra{}

	db, err := database.New(cfg)
	if err != nil {
		return deps, fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}
	if deps.pool, err = database.NewPool(db, cfg.Database.AcquireTimeout); err != nil {
		_ = db.Close()
		return deps, fmt.Errorf("커넥션 풀 생성 실패: %w", err)
	}

	if cfg.Metrics.Enabled {
		deps.metrics = metrics.New(cfg.Metrics.Namespace)
		if err := deps.metrics.RegisterDB(deps.pool.SQLDB(), deps.pool.Driver()); err != nil {
			return deps, fmt.Errorf("DB 메트릭 등록 실패: %w", err)
		}
	}

	// NATS_URL 미설정 시 no-op
	if deps.publisher, err = events.New(cfg.Events.NATSURL, cfg.Events.SubjectPrefix); err != nil {
		return deps, fmt.Errorf("이벤트 발행자 생성 실패: %w", err)
	}
	return deps, nil
}

// serve runs srv until it fails or ctx is cancelled, then drains within gracefulTimeout.
func serve(ctx context.Context, srv *bootstrap.Server, gracefulTimeout time.Duration) error {
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("서버 오류: %w", err)
		}
		return nil

	case <-ctx.Done():
		slog.Info("종료 신호 수신됨", "addr", srv.Addr())

		// 부모 ctx는 이미 취소되었으므로 새 deadline으로 drain
		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("서버 강제 종료: %w", err)
		}
		return nil
	}
}

package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/config"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/logger"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes GORM output through the request-scoped slog logger,
// so SQL lines carry the request_id of the call that issued them.
type GormLogger struct {
	SlowThreshold        time.Duration
	IgnoreRecordNotFound bool
	HideParams           bool // 바인딩 값 대신 placeholder만 남김
	LogLevel             gormlogger.LogLevel
}

// newLogger: test = silent, production = error, 그 외 = info
func newLogger(cfg *config.Config) *GormLogger {
	var logLevel gormlogger.LogLevel
	switch {
	case cfg.App.Env == "test":
		logLevel = gormlogger.Silent
	case cfg.IsProduction():
		logLevel = gormlogger.Error
	default:
		logLevel = gormlogger.Info
	}

	return &GormLogger{
		SlowThreshold:        cfg.Database.SlowThreshold,
		IgnoreRecordNotFound: true,
		HideParams:           cfg.IsProduction(),
		LogLevel:             logLevel,
	}
}

func (l *GormLogger) from(ctx context.Context) *slog.Logger {
	return logger.FromContext(ctx).With("component", "gorm")
}

// LogMode sets the log level
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Info {
		l.from(ctx).InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Warn {
		l.from(ctx).WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Error {
		l.from(ctx).ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// ParamsFilter implements gormlogger.ParamsFilter: with HideParams the SQL keeps its placeholders.
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, params ...interface{}) (string, []interface{}) {
	if l.HideParams {
		return sql, nil
	}
	return sql, params
}

// Trace logs one statement. Cancelled statements are warnings: the caller gave up, the database did not fail.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	log := l.from(ctx).With("elapsed", elapsed.String(), "rows", rows)

	switch {
	case err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) && l.LogLevel >= gormlogger.Warn:
		log.WarnContext(ctx, "Database query cancelled", "error", err, "sql", sql)

	case err != nil && l.LogLevel >= gormlogger.Error && (!errors.Is(err, gorm.ErrRecordNotFound) || !l.IgnoreRecordNotFound):
		log.ErrorContext(ctx, "Database query error", "error", err, "sql", sql)

	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormlogger.Warn:
		log.WarnContext(ctx, "Slow SQL query detected", "threshold", l.SlowThreshold.String(), "sql", sql)

	case l.LogLevel >= gormlogger.Info:
		log.DebugContext(ctx, "SQL query executed", "sql", sql)
	}
}

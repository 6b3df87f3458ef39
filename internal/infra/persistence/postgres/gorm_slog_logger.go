package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"identity/config"
	deliverycontext "identity/internal/delivery/context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultGormSlowThreshold = 200 * time.Millisecond

// gormSlogLogger routes GORM logs to the request-scoped slog logger. Bound
// values are never rendered into the logged SQL: account rows carry
// password digests and contact addresses.
type gormSlogLogger struct {
	logger        *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

var (
	_ logger.Interface  = (*gormSlogLogger)(nil)
	_ gorm.ParamsFilter = (*gormSlogLogger)(nil)
)

func newGormSlogLogger(baseLogger *slog.Logger, cfg *config.Config) *gormSlogLogger {
	l := &gormSlogLogger{
		logger:        baseLogger,
		level:         logger.Warn,
		slowThreshold: defaultGormSlowThreshold,
	}
	if cfg == nil {
		return l
	}

	if cfg.Env.Debug {
		l.level = logger.Info
	}
	if cfg.Database.SlowQueryThreshold > 0 {
		l.slowThreshold = cfg.Database.SlowQueryThreshold
	}

	return l
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

// ParamsFilter drops bound values so logged statements keep their placeholders.
func (l *gormSlogLogger) ParamsFilter(_ context.Context, sql string, _ ...any) (string, []any) {
	return sql, nil
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (l *gormSlogLogger) message(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.level < threshold || l.logger == nil {
		return
	}

	l.loggerFor(ctx).LogAttrs(ctx, level, "GORM "+level.String(),
		slog.String("message", fmt.Sprintf(msg, args...)),
	)
}

func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.logger == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		attrs := append(l.queryAttrs(sqlAndRowsFn, elapsed), slog.String("error", err.Error()))
		l.loggerFor(ctx).LogAttrs(ctx, slog.LevelError, "GORM query failed", attrs...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		attrs := append(l.queryAttrs(sqlAndRowsFn, elapsed), slog.Duration("slowThreshold", l.slowThreshold))
		l.loggerFor(ctx).LogAttrs(ctx, slog.LevelWarn, "GORM slow query", attrs...)
	case l.level >= logger.Info:
		l.loggerFor(ctx).LogAttrs(ctx, slog.LevelDebug, "GORM query", l.queryAttrs(sqlAndRowsFn, elapsed)...)
	}
}

func (l *gormSlogLogger) loggerFor(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, l.logger)
}

func (l *gormSlogLogger) queryAttrs(sqlAndRowsFn func() (string, int64), elapsed time.Duration) []slog.Attr {
	sql, rows := sqlAndRowsFn()

	return []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
}

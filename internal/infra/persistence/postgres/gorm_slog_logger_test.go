package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"identity/config"
	deliverycontext "identity/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)

	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func TestNewGormSlogLogger_Config(t *testing.T) {
	base, _ := newBufferLogger()

	l := newGormSlogLogger(base, nil)
	assert.Equal(t, logger.Warn, l.level)
	assert.Equal(t, defaultGormSlowThreshold, l.slowThreshold)

	cfg := &config.Config{}
	cfg.Env.Debug = true
	cfg.Database.SlowQueryThreshold = time.Second

	l = newGormSlogLogger(base, cfg)
	assert.Equal(t, logger.Info, l.level)
	assert.Equal(t, time.Second, l.slowThreshold)
}

func TestGormSlogLogger_ParamsFilterDropsValues(t *testing.T) {
	base, _ := newBufferLogger()
	l := newGormSlogLogger(base, nil)

	sql, params := l.ParamsFilter(context.Background(), "SELECT * FROM accounts WHERE email = $1", "a@example.com")
	assert.Equal(t, "SELECT * FROM accounts WHERE email = $1", sql)
	assert.Nil(t, params)
}

func TestGormSlogLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("errors are logged with the request logger", func(t *testing.T) {
		base, buf := newBufferLogger()
		l := newGormSlogLogger(base, nil)

		ctx := deliverycontext.WithLogger(context.Background(), base.With(slog.String("request_id", "req-1")))
		l.Trace(ctx, time.Now(), query, errors.New("boom"))

		assert.Contains(t, buf.String(), "GORM query failed")
		assert.Contains(t, buf.String(), "request_id=req-1")
		assert.Contains(t, buf.String(), "boom")
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		base, buf := newBufferLogger()
		l := newGormSlogLogger(base, nil)

		l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
		assert.Empty(t, buf.String())
	})

	t.Run("slow query", func(t *testing.T) {
		base, buf := newBufferLogger()
		l := newGormSlogLogger(base, nil)

		l.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
		assert.Contains(t, buf.String(), "GORM slow query")
	})

	t.Run("fast queries only at info", func(t *testing.T) {
		base, buf := newBufferLogger()
		l := newGormSlogLogger(base, nil)

		l.Trace(context.Background(), time.Now(), query, nil)
		assert.Empty(t, buf.String())

		l.LogMode(logger.Info).Trace(context.Background(), time.Now(), query, nil)
		assert.Contains(t, buf.String(), "GORM query")
	})

	t.Run("silent", func(t *testing.T) {
		base, buf := newBufferLogger()
		l := newGormSlogLogger(base, nil).LogMode(logger.Silent)

		l.Trace(context.Background(), time.Now(), query, errors.New("boom"))
		assert.Empty(t, buf.String())
	})
}

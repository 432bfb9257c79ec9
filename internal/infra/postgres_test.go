package infra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"tripspark/internal/config"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestGormLogger_WritesThroughZap(t *testing.T) {
	logger, logs := observedLogger()
	gl := newGormLogger(logger)
	ctx := context.Background()

	gl.Info(ctx, "connected to %s", "db")
	assert.Zero(t, logs.Len(), "info is below the warn threshold")

	gl.Warn(ctx, "pool nearly exhausted: %d", 9)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "gorm", entry.LoggerName)
}

func TestGormLogger_TraceErrors(t *testing.T) {
	logger, logs := observedLogger()
	gl := newGormLogger(logger)
	ctx := context.Background()
	sql := func() (string, int64) { return `SELECT * FROM "trips" WHERE id = 1`, 0 }

	gl.Trace(ctx, time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.Len(), "not-found lookups are expected and stay quiet")

	gl.Trace(ctx, time.Now(), sql, errors.New("connection reset"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}

func TestGormLogger_SlowQuery(t *testing.T) {
	logger, logs := observedLogger()
	gl := newGormLogger(logger)

	sql := func() (string, int64) { return `SELECT * FROM "landmarks"`, 12 }
	gl.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestInitPostgresql_EmptyURL(t *testing.T) {
	_, err := InitPostgresql(config.DatabaseConfig{}, zap.NewNop())
	assert.Error(t, err)
}

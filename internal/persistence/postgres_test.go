package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/equitask/equitask-api/internal/config"
)

func TestNewPostgresRequiresDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrNoDSN)
}

func TestApplyPoolConfig(t *testing.T) {
	poolCfg, err := pgxpool.ParseConfig("postgres://user:pw@localhost:5432/equitask")
	require.NoError(t, err)

	applyPoolConfig(poolCfg, config.PostgresConfig{
		MaxConns:        8,
		MinConns:        20,
		ConnMaxIdleSec:  15,
		ConnMaxLifeSec:  120,
		ApplicationName: "equitask-api",
	})

	assert.Equal(t, int32(8), poolCfg.MaxConns)
	assert.NotEqual(t, int32(20), poolCfg.MinConns)
	assert.Equal(t, 15*time.Second, poolCfg.MaxConnIdleTime)
	assert.Equal(t, 2*time.Minute, poolCfg.MaxConnLifetime)
	assert.Equal(t, "equitask-api", poolCfg.ConnConfig.RuntimeParams["application_name"])
}

func TestNilHandlesAreSafe(t *testing.T) {
	var pg *Postgres
	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(context.Background()))
	pg.Close()

	var rd *Redis
	assert.Error(t, rd.Ping(context.Background()))
	rd.Close()
}

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"call-metrics-service/internal/config"
)

// NewConn opens a ClickHouse connection configured with sane defaults.
func NewConn(ctx context.Context, dbURL string, cfg *config.Config) (clickhouse.Conn, error) {
	opts, err := clickhouse.ParseDSN(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	opts.MaxOpenConns = cfg.DBMaxConns
	opts.MaxIdleConns = cfg.DBMinConns
	opts.ConnMaxLifetime = cfg.DBMaxConnLifetime
	opts.DialTimeout = 10 * time.Second

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return conn, nil
}

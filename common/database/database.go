package database

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"
)

const defaultMaxExecutionTime = 60

type Options struct {
	// DSN is host:port, optionally followed by ?setting=value pairs that are
	// passed to ClickHouse as query settings.
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Username        string
	Password        string
	Database        string
}

type Database struct {
	conn   clickhouse.Conn
	logger *zap.Logger
}

func New(ctx context.Context, opts Options, logger *zap.Logger) (*Database, error) {
	host, settings, err := parseDSN(opts.DSN)
	if err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Protocol: clickhouse.Native,
		Addr:     []string{host},
		Settings: settings,
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		DialTimeout:     time.Second * 30,
		MaxOpenConns:    opts.MaxOpenConns,
		MaxIdleConns:    opts.MaxIdleConns,
		ConnMaxLifetime: opts.ConnMaxLifetime,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create clickhouse connection: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	logger.Info("Connected to ClickHouse",
		zap.String("addr", host),
		zap.String("database", opts.Database),
	)

	return &Database{
		conn:   conn,
		logger: logger,
	}, nil
}

func parseDSN(dsn string) (string, clickhouse.Settings, error) {
	host, rawQuery, _ := strings.Cut(dsn, "?")
	if host == "" {
		return "", nil, fmt.Errorf("clickhouse dsn has no host: %q", dsn)
	}

	settings := clickhouse.Settings{"max_execution_time": defaultMaxExecutionTime}
	if rawQuery == "" {
		return host, settings, nil
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", nil, fmt.Errorf("invalid clickhouse dsn settings: %w", err)
	}
	for key := range values {
		v := values.Get(key)
		if n, err := strconv.Atoi(v); err == nil {
			settings[key] = n
		} else {
			settings[key] = v
		}
	}
	return host, settings, nil
}

func (db *Database) Close() error {
	return db.conn.Close()
}

func (db *Database) Conn() clickhouse.Conn {
	return db.conn
}

// Package database 提供 PostgreSQL 连接管理
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zhipai/zhipai/internal/config"
	"github.com/zhipai/zhipai/pkg/logger"

	_ "github.com/lib/pq" // PostgreSQL 驱动
)

// slowQueryThreshold 超过该耗时的 SQL 记录告警日志
const slowQueryThreshold = 100 * time.Millisecond

// DB 数据库连接封装，持久化排班历史时按需建立
type DB struct {
	*sql.DB
}

// New 建立数据库连接并验证可达性
func New(cfg *config.DatabaseConfig) (*DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("打开数据库连接失败: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Msg("数据库连接成功")

	return &DB{DB: db}, nil
}

// Close 关闭数据库连接
func (db *DB) Close() error {
	if db.DB == nil {
		return nil
	}
	return db.DB.Close()
}

// ExecContext 执行 SQL 语句，慢查询记录日志
func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := db.DB.ExecContext(ctx, query, args...)
	logSlow(query, time.Since(start))
	return result, err
}

// QueryContext 执行查询，慢查询记录日志
func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := db.DB.QueryContext(ctx, query, args...)
	logSlow(query, time.Since(start))
	return rows, err
}

// QueryRowContext 执行单行查询
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRowContext(ctx, query, args...)
}

func logSlow(query string, d time.Duration) {
	if d <= slowQueryThreshold {
		return
	}
	if len(query) > 200 {
		query = query[:200] + "..."
	}
	logger.Warn().
		Str("query", query).
		Dur("duration", d).
		Msg("慢 SQL 查询")
}

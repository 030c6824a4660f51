// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
)

// ListFilter 列表查询过滤器
type ListFilter struct {
	Search   string `json:"search,omitempty"` // 按名称模糊匹配
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
	OrderBy  string `json:"order_by,omitempty"`
	OrderDir string `json:"order_dir,omitempty"` // asc/desc
}

// DefaultListFilter 返回默认过滤器
func DefaultListFilter() ListFilter {
	return ListFilter{
		Offset:   0,
		Limit:    20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// WithLimit 设置限制
func (f ListFilter) WithLimit(limit int) ListFilter {
	f.Limit = limit
	return f
}

// WithOffset 设置偏移
func (f ListFilter) WithOffset(offset int) ListFilter {
	f.Offset = offset
	return f
}

// WithSearch 设置名称搜索
func (f ListFilter) WithSearch(search string) ListFilter {
	f.Search = search
	return f
}

// DB 数据库接口
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Scanner 行扫描接口
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Migrate 创建排班历史所需的表结构
func Migrate(ctx context.Context, db DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS staff (
			id          UUID PRIMARY KEY,
			name        TEXT NOT NULL UNIQUE,
			contracted_hours INTEGER NOT NULL,
			preferences JSONB,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS rosters (
			id              UUID PRIMARY KEY,
			name            TEXT NOT NULL,
			days            INTEGER NOT NULL,
			period_days     INTEGER NOT NULL,
			hours_per_shift INTEGER NOT NULL,
			penalty         INTEGER NOT NULL,
			iterations      INTEGER NOT NULL,
			optimal         BOOLEAN NOT NULL,
			cells           JSONB NOT NULL,
			solved_at       TIMESTAMPTZ NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rosters_name ON rosters (name, created_at DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhipai/zhipai/pkg/model"
)

// Roster 排班求解结果的历史记录
// Cells 以人员姓名为键，保存其全周期的班次序列
type Roster struct {
	ID            uuid.UUID                    `json:"id"`
	Name          string                       `json:"name"`
	Days          int                          `json:"days"`
	PeriodDays    int                          `json:"period_days"`
	HoursPerShift int                          `json:"hours_per_shift"`
	Penalty       int                          `json:"penalty"`
	Iterations    int                          `json:"iterations"`
	Optimal       bool                         `json:"optimal"`
	Cells         map[string][]model.ShiftType `json:"cells"`
	SolvedAt      time.Time                    `json:"solved_at"`
	CreatedAt     time.Time                    `json:"created_at"`
}

// NewRoster 从求解完成的分配构建历史记录
func NewRoster(name string, asg *model.Assignment, periodDays, hoursPerShift, penalty, iterations int, optimal bool) *Roster {
	cells := make(map[string][]model.ShiftType, len(asg.Staff()))
	for i, s := range asg.Staff() {
		row := make([]model.ShiftType, asg.Days())
		for d := 0; d < asg.Days(); d++ {
			row[d] = asg.Get(i, d)
		}
		cells[s.Name] = row
	}
	return &Roster{
		ID:            uuid.New(),
		Name:          name,
		Days:          asg.Days(),
		PeriodDays:    periodDays,
		HoursPerShift: hoursPerShift,
		Penalty:       penalty,
		Iterations:    iterations,
		Optimal:       optimal,
		Cells:         cells,
		SolvedAt:      time.Now(),
	}
}

// RosterRepository 排班历史仓储
type RosterRepository struct {
	db DB
}

// NewRosterRepository 创建排班历史仓储
func NewRosterRepository(db DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// Create 保存排班记录
func (r *RosterRepository) Create(ctx context.Context, roster *Roster) error {
	if roster.ID == uuid.Nil {
		roster.ID = uuid.New()
	}
	roster.CreatedAt = time.Now()

	cellsJSON, err := json.Marshal(roster.Cells)
	if err != nil {
		return fmt.Errorf("序列化排班单元失败: %w", err)
	}

	query := `
		INSERT INTO rosters (
			id, name, days, period_days, hours_per_shift,
			penalty, iterations, optimal, cells, solved_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.db.ExecContext(ctx, query,
		roster.ID, roster.Name, roster.Days, roster.PeriodDays, roster.HoursPerShift,
		roster.Penalty, roster.Iterations, roster.Optimal, cellsJSON,
		roster.SolvedAt, roster.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("保存排班记录失败: %w", err)
	}
	return nil
}

// GetByID 根据ID获取排班记录，不存在时返回 nil
func (r *RosterRepository) GetByID(ctx context.Context, id uuid.UUID) (*Roster, error) {
	query := `
		SELECT id, name, days, period_days, hours_per_shift,
			penalty, iterations, optimal, cells, solved_at, created_at
		FROM rosters
		WHERE id = $1
	`
	return r.scan(r.db.QueryRowContext(ctx, query, id))
}

// Latest 获取指定名称的最近一次排班
func (r *RosterRepository) Latest(ctx context.Context, name string) (*Roster, error) {
	query := `
		SELECT id, name, days, period_days, hours_per_shift,
			penalty, iterations, optimal, cells, solved_at, created_at
		FROM rosters
		WHERE name = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scan(r.db.QueryRowContext(ctx, query, name))
}

// List 列出排班记录
func (r *RosterRepository) List(ctx context.Context, filter ListFilter) ([]*Roster, int, error) {
	var conditions []string
	var args []interface{}
	argNum := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argNum))
		args = append(args, "%"+filter.Search+"%")
		argNum++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM rosters %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("统计排班记录失败: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, days, period_days, hours_per_shift,
			penalty, iterations, optimal, cells, solved_at, created_at
		FROM rosters %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, whereClause, filter.OrderBy, filter.OrderDir, argNum, argNum+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("查询排班记录失败: %w", err)
	}
	defer rows.Close()

	var rosters []*Roster
	for rows.Next() {
		roster, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		rosters = append(rosters, roster)
	}
	return rosters, total, nil
}

// Delete 删除排班记录
func (r *RosterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM rosters WHERE id = $1", id); err != nil {
		return fmt.Errorf("删除排班记录失败: %w", err)
	}
	return nil
}

func (r *RosterRepository) scan(row *sql.Row) (*Roster, error) {
	roster, err := scanRoster(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return roster, err
}

func (r *RosterRepository) scanRow(rows *sql.Rows) (*Roster, error) {
	return scanRoster(rows)
}

func scanRoster(s Scanner) (*Roster, error) {
	roster := &Roster{}
	var cellsJSON []byte

	err := s.Scan(
		&roster.ID, &roster.Name, &roster.Days, &roster.PeriodDays, &roster.HoursPerShift,
		&roster.Penalty, &roster.Iterations, &roster.Optimal, &cellsJSON,
		&roster.SolvedAt, &roster.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("扫描排班记录失败: %w", err)
	}

	if len(cellsJSON) > 0 {
		if err := json.Unmarshal(cellsJSON, &roster.Cells); err != nil {
			return nil, fmt.Errorf("反序列化排班单元失败: %w", err)
		}
	}
	return roster, nil
}

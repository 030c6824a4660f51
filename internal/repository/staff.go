package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zhipai/zhipai/pkg/model"
)

// StaffRecord 人员档案
type StaffRecord struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	ContractedHours int                `json:"contracted_hours"`
	Preferences     *model.Preferences `json:"preferences,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ToModel 转换为求解器使用的人员对象
func (rec *StaffRecord) ToModel() *model.Staff {
	return &model.Staff{
		Name:            rec.Name,
		ContractedHours: rec.ContractedHours,
		Preferences:     rec.Preferences,
	}
}

// StaffRepository 人员仓储
type StaffRepository struct {
	db DB
}

// NewStaffRepository 创建人员仓储
func NewStaffRepository(db DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// Create 创建人员档案
func (r *StaffRepository) Create(ctx context.Context, rec *StaffRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	prefsJSON, err := json.Marshal(rec.Preferences)
	if err != nil {
		return fmt.Errorf("序列化偏好失败: %w", err)
	}

	query := `
		INSERT INTO staff (id, name, contracted_hours, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Name, rec.ContractedHours, prefsJSON, rec.CreatedAt, rec.UpdatedAt,
	); err != nil {
		return fmt.Errorf("创建人员档案失败: %w", err)
	}
	return nil
}

// GetByName 按姓名获取人员档案，不存在时返回 nil
func (r *StaffRepository) GetByName(ctx context.Context, name string) (*StaffRecord, error) {
	query := `
		SELECT id, name, contracted_hours, preferences, created_at, updated_at
		FROM staff
		WHERE name = $1
	`
	rec, err := scanStaff(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// Update 更新人员档案
func (r *StaffRepository) Update(ctx context.Context, rec *StaffRecord) error {
	rec.UpdatedAt = time.Now()
	prefsJSON, err := json.Marshal(rec.Preferences)
	if err != nil {
		return fmt.Errorf("序列化偏好失败: %w", err)
	}

	query := `
		UPDATE staff SET contracted_hours = $2, preferences = $3, updated_at = $4
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.ContractedHours, prefsJSON, rec.UpdatedAt,
	); err != nil {
		return fmt.Errorf("更新人员档案失败: %w", err)
	}
	return nil
}

// Delete 删除人员档案
func (r *StaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM staff WHERE id = $1", id); err != nil {
		return fmt.Errorf("删除人员档案失败: %w", err)
	}
	return nil
}

// ListAll 按创建顺序列出全部人员
// 顺序即求解时的人员编号顺序，决定同分候选的平局裁决
func (r *StaffRepository) ListAll(ctx context.Context) ([]*StaffRecord, error) {
	query := `
		SELECT id, name, contracted_hours, preferences, created_at, updated_at
		FROM staff
		ORDER BY created_at, name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询人员列表失败: %w", err)
	}
	defer rows.Close()

	var records []*StaffRecord
	for rows.Next() {
		rec, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func scanStaff(s Scanner) (*StaffRecord, error) {
	rec := &StaffRecord{}
	var prefsJSON []byte

	err := s.Scan(&rec.ID, &rec.Name, &rec.ContractedHours, &prefsJSON, &rec.CreatedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("扫描人员档案失败: %w", err)
	}

	if len(prefsJSON) > 0 && string(prefsJSON) != "null" {
		rec.Preferences = &model.Preferences{}
		if err := json.Unmarshal(prefsJSON, rec.Preferences); err != nil {
			return nil, fmt.Errorf("反序列化偏好失败: %w", err)
		}
	}
	return rec, nil
}

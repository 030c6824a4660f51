// Package loader 从 JSON 文件加载人员与约束配置
//
// 加载分两步：结构校验（字段必填、取值范围）在反序列化后立即执行，
// 语义校验（人员引用、参数合法性）由约束编译阶段完成。
package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

var validate = validator.New()

// staffEntry 人员记录的文件格式
type staffEntry struct {
	Name            string      `json:"name" validate:"required"`
	ContractedHours int         `json:"contracted_hours" validate:"gte=0"`
	Preferences     *prefsEntry `json:"preferences,omitempty"`
}

// prefsEntry 个人偏好的文件格式，班次以名称表示
type prefsEntry struct {
	PreferredShifts []string `json:"preferred_shifts,omitempty" validate:"omitempty,dive,oneof=rest morning afternoon night"`
	AvoidShifts     []string `json:"avoid_shifts,omitempty" validate:"omitempty,dive,oneof=rest morning afternoon night"`
	OnlyShifts      []string `json:"only_shifts,omitempty" validate:"omitempty,dive,oneof=rest morning afternoon night"`
	AvoidDays       []int    `json:"avoid_days,omitempty" validate:"omitempty,dive,gte=0,lte=6"`
}

// LoadStaff 加载人员文件
//
// 文件内容为人员对象数组。姓名在文件内必须唯一，加载顺序即求解时
// 的人员编号顺序。
func LoadStaff(path string) ([]*model.Staff, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeValidationFail, "人员文件不可读")
	}

	var entries []staffEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeValidationFail, "人员文件不是合法的 JSON 数组")
	}
	if len(entries) == 0 {
		return nil, apperrors.InvalidInput("staff", "人员列表为空")
	}

	ve := &apperrors.ValidationErrors{}
	seen := make(map[string]bool, len(entries))
	staff := make([]*model.Staff, 0, len(entries))

	for i, e := range entries {
		if err := validate.Struct(e); err != nil {
			for _, fe := range err.(validator.ValidationErrors) {
				ve.Add(fmt.Sprintf("staff[%d].%s", i, fe.Field()), fe.Tag())
			}
			continue
		}
		if seen[e.Name] {
			ve.Add(fmt.Sprintf("staff[%d].name", i), fmt.Sprintf("姓名重复: %s", e.Name))
			continue
		}
		seen[e.Name] = true

		prefs, err := e.Preferences.toModel()
		if err != nil {
			ve.Add(fmt.Sprintf("staff[%d].preferences", i), err.Error())
			continue
		}
		staff = append(staff, &model.Staff{
			Name:            e.Name,
			ContractedHours: e.ContractedHours,
			Preferences:     prefs,
		})
	}

	if ve.HasErrors() {
		return nil, ve.ToAppError()
	}
	return staff, nil
}

func (p *prefsEntry) toModel() (*model.Preferences, error) {
	if p == nil {
		return nil, nil
	}
	prefs := &model.Preferences{}

	var err error
	if prefs.PreferredShifts, err = shiftSet(p.PreferredShifts); err != nil {
		return nil, err
	}
	if prefs.AvoidShifts, err = shiftSet(p.AvoidShifts); err != nil {
		return nil, err
	}
	if prefs.OnlyShifts, err = shiftSet(p.OnlyShifts); err != nil {
		return nil, err
	}
	if len(p.AvoidDays) > 0 {
		prefs.AvoidDays = make(map[int]bool, len(p.AvoidDays))
		for _, d := range p.AvoidDays {
			prefs.AvoidDays[d] = true
		}
	}
	return prefs, nil
}

func shiftSet(names []string) (map[model.ShiftType]bool, error) {
	if len(names) == 0 {
		return nil, nil
	}
	set := make(map[model.ShiftType]bool, len(names))
	for _, n := range names {
		s, err := model.ParseShiftType(n)
		if err != nil {
			return nil, err
		}
		set[s] = true
	}
	return set, nil
}

// constraintFile 约束文件格式
type constraintFile struct {
	Hard []declEntry `json:"hard"`
	Soft []declEntry `json:"soft"`
}

// declEntry 单条约束声明的文件格式
type declEntry struct {
	Type   string                 `json:"type" validate:"required"`
	Params map[string]interface{} `json:"params"`
	Weight int                    `json:"weight,omitempty" validate:"gte=0"`
}

// LoadConstraints 加载约束文件，返回硬、软两组声明
//
// 这里只做结构校验；未知类型、非法参数在编译约束集时按声明序号
// 报配置错误。
func LoadConstraints(path string) (hard, soft []constraint.Declaration, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeValidationFail, "约束文件不可读")
	}

	var f constraintFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeValidationFail, "约束文件不是合法的 JSON")
	}

	ve := &apperrors.ValidationErrors{}
	hard = convertDecls(f.Hard, "hard", ve)
	soft = convertDecls(f.Soft, "soft", ve)
	if ve.HasErrors() {
		return nil, nil, ve.ToAppError()
	}
	return hard, soft, nil
}

func convertDecls(entries []declEntry, group string, ve *apperrors.ValidationErrors) []constraint.Declaration {
	decls := make([]constraint.Declaration, 0, len(entries))
	for i, e := range entries {
		if err := validate.Struct(e); err != nil {
			for _, fe := range err.(validator.ValidationErrors) {
				ve.Add(fmt.Sprintf("%s[%d].%s", group, i, fe.Field()), fe.Tag())
			}
			continue
		}
		params := e.Params
		if params == nil {
			params = map[string]interface{}{}
		}
		decls = append(decls, constraint.Declaration{
			Type:   e.Type,
			Params: params,
			Weight: e.Weight,
		})
	}
	return decls
}

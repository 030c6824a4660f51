package model

import "testing"

func TestParseShiftType(t *testing.T) {
	tests := []struct {
		name    string
		want    ShiftType
		wantErr bool
	}{
		{"rest", ShiftRest, false},
		{"morning", ShiftMorning, false},
		{"afternoon", ShiftAfternoon, false},
		{"night", ShiftNight, false},
		{"smonto", 0, true},
		{"", 0, true},
		{"MORNING", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseShiftType(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseShiftType(%q) 应该报错", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseShiftType(%q) error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseShiftType(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestShiftType_IsWorking(t *testing.T) {
	if ShiftRest.IsWorking() {
		t.Error("休息不是工作班次")
	}
	for _, s := range WorkingShifts {
		if !s.IsWorking() {
			t.Errorf("%v 应为工作班次", s)
		}
	}
	if ShiftUnassigned.IsWorking() {
		t.Error("未赋值哨兵不是工作班次")
	}
}

func TestShiftType_Valid(t *testing.T) {
	for _, s := range AllShifts {
		if !s.Valid() {
			t.Errorf("%v 应为合法取值", s)
		}
	}
	if ShiftUnassigned.Valid() {
		t.Error("未赋值哨兵不是合法取值")
	}
	if ShiftType(4).Valid() {
		t.Error("超出枚举范围的值不合法")
	}
}

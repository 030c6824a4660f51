// Package config 提供配置管理
//
// 配置来源优先级：默认值 < 配置文件（YAML）< 环境变量（ZHIPAI_ 前缀，
// 双下划线分层，如 ZHIPAI_DATABASE__HOST）。
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config 应用配置
type Config struct {
	App      AppConfig      `koanf:"app"`
	Database DatabaseConfig `koanf:"database"`
	Solver   SolverConfig   `koanf:"solver"`
	Schedule ScheduleConfig `koanf:"schedule"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name     string `koanf:"name"`
	Env      string `koanf:"env"`
	LogLevel string `koanf:"log_level"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Name            string        `koanf:"name"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// DSN 返回数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// SolverConfig 求解器预算配置
type SolverConfig struct {
	MaxIterations int           `koanf:"max_iterations"`
	MaxTime       time.Duration `koanf:"max_time"`
}

// ScheduleConfig 排班默认参数
type ScheduleConfig struct {
	Days          int `koanf:"days"`
	PeriodDays    int `koanf:"period_days"`
	HoursPerShift int `koanf:"hours_per_shift"`

	// 每日各班次最低人数的缺省覆盖
	CoverageMorning   int `koanf:"coverage_morning"`
	CoverageAfternoon int `koanf:"coverage_afternoon"`
	CoverageNight     int `koanf:"coverage_night"`
}

// Default 返回带默认值的配置
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:     "zhipai",
			Env:      "development",
			LogLevel: "info",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			Name:            "zhipai",
			User:            "zhipai",
			Password:        "zhipai123",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Solver: SolverConfig{
			MaxIterations: 2_000_000,
			MaxTime:       30 * time.Second,
		},
		Schedule: ScheduleConfig{
			Days:              7,
			HoursPerShift:     8,
			CoverageMorning:   2,
			CoverageAfternoon: 2,
			CoverageNight:     1,
		},
	}
}

// Load 加载配置；path 为空时跳过文件，仅用默认值与环境变量
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("配置文件不可读: %w", err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	// 环境变量覆盖
	if err := k.Load(env.Provider("ZHIPAI_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "zhipai_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("配置反序列化失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置取值合法性
func (c *Config) Validate() error {
	if c.Solver.MaxIterations < 0 {
		return fmt.Errorf("solver.max_iterations 不能为负: %d", c.Solver.MaxIterations)
	}
	if c.Schedule.Days <= 0 {
		return fmt.Errorf("schedule.days 必须为正: %d", c.Schedule.Days)
	}
	if c.Schedule.HoursPerShift <= 0 {
		return fmt.Errorf("schedule.hours_per_shift 必须为正: %d", c.Schedule.HoursPerShift)
	}
	if c.Schedule.CoverageMorning < 0 || c.Schedule.CoverageAfternoon < 0 || c.Schedule.CoverageNight < 0 {
		return fmt.Errorf("覆盖人数不能为负")
	}
	return nil
}

// IsDevelopment 检查是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction 检查是否为生产环境
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

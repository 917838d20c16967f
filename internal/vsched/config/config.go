// Package config 提供调度服务的配置
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultServiceDownTime 心跳超时默认值（秒）
	// 超过该时间没有心跳的服务视为离线
	DefaultServiceDownTime = 60

	// DefaultProbeTimeout 远程 compareCPU 探测的默认超时（秒）
	DefaultProbeTimeout = 10

	// SchedulerChance 随机调度策略
	SchedulerChance = "chance"
	// SchedulerSimple 最少负载调度策略
	SchedulerSimple = "simple"
)

type Config struct {
	// Address 是 API 监听地址
	// 可以通过环境变量 VSCHED_ADDRESS 配置
	// 默认：:8080
	Address string `yaml:"address"`

	// DBPath 是注册表数据库路径
	// 可以通过环境变量 VSCHED_DB_PATH 配置
	// 默认：~/.local/share/vsched/vsched.db
	DBPath string `yaml:"db_path"`

	// ServiceDownTimeSeconds 是心跳超时（秒）
	// 可以通过环境变量 VSCHED_SERVICE_DOWN_TIME 配置
	ServiceDownTimeSeconds int `yaml:"service_down_time"`

	// ProbeTimeoutSeconds 是远程 compareCPU 探测超时（秒）
	// 可以通过环境变量 VSCHED_PROBE_TIMEOUT 配置
	ProbeTimeoutSeconds int `yaml:"probe_timeout"`

	// Scheduler 是调度策略，chance 或 simple
	// 可以通过环境变量 VSCHED_SCHEDULER 配置
	// 默认：simple
	Scheduler string `yaml:"scheduler"`
}

// New 创建配置
// 优先级：环境变量 > 配置文件（VSCHED_CONFIG 指定的 YAML）> 默认值
func New() (*Config, error) {
	cfg := &Config{
		Address:                ":8080",
		DBPath:                 getDefaultDBPath(),
		ServiceDownTimeSeconds: DefaultServiceDownTime,
		ProbeTimeoutSeconds:    DefaultProbeTimeout,
		Scheduler:              SchedulerSimple,
	}

	// 1. 配置文件（可选）
	if path := os.Getenv("VSCHED_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// 2. 环境变量覆盖
	if addr := os.Getenv("VSCHED_ADDRESS"); addr != "" {
		cfg.Address = addr
	}
	if dbPath := os.Getenv("VSCHED_DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if v := os.Getenv("VSCHED_SERVICE_DOWN_TIME"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse VSCHED_SERVICE_DOWN_TIME %q: %w", v, err)
		}
		cfg.ServiceDownTimeSeconds = n
	}
	if v := os.Getenv("VSCHED_PROBE_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse VSCHED_PROBE_TIMEOUT %q: %w", v, err)
		}
		cfg.ProbeTimeoutSeconds = n
	}
	if v := os.Getenv("VSCHED_SCHEDULER"); v != "" {
		cfg.Scheduler = v
	}

	if cfg.Scheduler != SchedulerChance && cfg.Scheduler != SchedulerSimple {
		return nil, fmt.Errorf("unknown scheduler %q, supported: %s, %s", cfg.Scheduler, SchedulerChance, SchedulerSimple)
	}
	if cfg.ServiceDownTimeSeconds <= 0 {
		return nil, fmt.Errorf("service_down_time must be positive, got %d", cfg.ServiceDownTimeSeconds)
	}
	if cfg.ProbeTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("probe_timeout must be positive, got %d", cfg.ProbeTimeoutSeconds)
	}

	return cfg, nil
}

// ServiceDownTime 返回心跳超时
func (c *Config) ServiceDownTime() time.Duration {
	return time.Duration(c.ServiceDownTimeSeconds) * time.Second
}

// ProbeTimeout 返回探测超时
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSeconds) * time.Second
}

// getDefaultDBPath 获取默认数据库路径
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vsched.db"
	}
	return filepath.Join(home, ".local", "share", "vsched", "vsched.db")
}

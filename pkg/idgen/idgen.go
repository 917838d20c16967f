// Package idgen 提供递增 ID 生成器
//
// 使用 Sonyflake 算法生成全局唯一且递增的 ID，用于标记每一次调度/迁移请求，
// 方便在日志和 API 响应中关联同一次请求的所有记录。
//
// 生成的 ID 格式：
//   - 调度请求 ID: req-{递增数字}
//   - 迁移请求 ID: mig-{递增数字}
package idgen

import (
	"fmt"
	"sync"
	"time"

	"github.com/sony/sonyflake"
)

// Generator 递增 ID 生成器
type Generator struct {
	sf *sonyflake.Sonyflake
}

var (
	defaultGenerator     *Generator
	defaultGeneratorOnce sync.Once
)

// DefaultGenerator 返回默认的 ID 生成器
func DefaultGenerator() *Generator {
	defaultGeneratorOnce.Do(func() {
		defaultGenerator = New()
	})
	return defaultGenerator
}

// New 创建新的 ID 生成器
func New() *Generator {
	sf := sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), // 起始时间
	})
	if sf == nil {
		// 如果创建失败，使用当前时间作为起始时间
		sf = sonyflake.NewSonyflake(sonyflake.Settings{
			StartTime: time.Now(),
		})
	}

	return &Generator{sf: sf}
}

// GenerateID 生成一个原始的递增 ID
func (g *Generator) GenerateID() (uint64, error) {
	return g.sf.NextID()
}

// GenerateRequestID 生成调度请求 ID，格式 req-{n}
func (g *Generator) GenerateRequestID() (string, error) {
	id, err := g.GenerateID()
	if err != nil {
		return "", fmt.Errorf("generate request id: %w", err)
	}
	return fmt.Sprintf("req-%d", id), nil
}

// GenerateMigrationID 生成迁移请求 ID，格式 mig-{n}
func (g *Generator) GenerateMigrationID() (string, error) {
	id, err := g.GenerateID()
	if err != nil {
		return "", fmt.Errorf("generate migration id: %w", err)
	}
	return fmt.Sprintf("mig-%d", id), nil
}

// GenerateServiceID 生成服务 ID，格式 srv-{n}
func (g *Generator) GenerateServiceID() (string, error) {
	id, err := g.GenerateID()
	if err != nil {
		return "", fmt.Errorf("generate service id: %w", err)
	}
	return fmt.Sprintf("srv-%d", id), nil
}

// GenerateInstanceID 生成实例 ID，格式 i-{n}
func (g *Generator) GenerateInstanceID() (string, error) {
	id, err := g.GenerateID()
	if err != nil {
		return "", fmt.Errorf("generate instance id: %w", err)
	}
	return fmt.Sprintf("i-%d", id), nil
}

// GenerateVolumeID 生成卷 ID，格式 vol-{n}
func (g *Generator) GenerateVolumeID() (string, error) {
	id, err := g.GenerateID()
	if err != nil {
		return "", fmt.Errorf("generate volume id: %w", err)
	}
	return fmt.Sprintf("vol-%d", id), nil
}

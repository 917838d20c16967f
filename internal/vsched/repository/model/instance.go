package model

import (
	"time"

	"gorm.io/gorm"
)

// 实例电源状态
const (
	PowerStateRunning = "running" // 运行中
	PowerStatePaused  = "paused"  // 已暂停
	PowerStateShutoff = "shutoff" // 已关机
)

// 迁移相关的状态描述
const (
	StateDescriptionRunning   = "running"   // 正常运行
	StateDescriptionMigrating = "migrating" // 迁移中
)

// Instance 实例表
type Instance struct {
	ID               string         `gorm:"primaryKey;type:text;column:id" json:"id"`                                     // i-{uuid}
	Hostname         string         `gorm:"type:text;not null;column:hostname" json:"hostname"`                           // 实例的展示名
	Host             string         `gorm:"type:text;not null;index:idx_instances_host;column:host" json:"host"`          // 当前所在主机
	LaunchedOn       string         `gorm:"type:text;not null;column:launched_on" json:"launched_on"`                     // 启动时所在主机
	VCPUs            int64          `gorm:"type:integer;not null;column:vcpus" json:"vcpus"`                              // 虚拟 CPU 数量
	MemoryMB         int64          `gorm:"type:integer;not null;column:memory_mb" json:"memory_mb"`                      // 内存大小（MB）
	LocalGB          int64          `gorm:"type:integer;not null;column:local_gb" json:"local_gb"`                        // 本地磁盘大小（GB）
	State            string         `gorm:"type:text;not null;index:idx_instances_state;column:state" json:"state"`       // running, paused, shutoff
	StateDescription string         `gorm:"type:text;not null;column:state_description" json:"state_description"`         // 子状态，如 running、migrating
	CreatedAt        time.Time      `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"type:datetime;not null;column:updated_at" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"type:datetime;index:idx_instances_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (Instance) TableName() string {
	return "instances"
}

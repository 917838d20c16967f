package model

import (
	"time"

	"gorm.io/gorm"
)

// Host 主机表
// 记录物理节点的容量和 hypervisor 标识，注册时由节点自报
type Host struct {
	Name              string         `gorm:"primaryKey;type:text;column:name" json:"name"`                        // 主机名
	URI               string         `gorm:"type:text;not null;column:uri" json:"uri"`                            // libvirt 连接 URI
	VCPUs             int64          `gorm:"type:integer;not null;column:vcpus" json:"vcpus"`                     // 逻辑 CPU 总数
	MemoryMB          int64          `gorm:"type:integer;not null;column:memory_mb" json:"memory_mb"`             // 内存总量（MB）
	LocalGB           int64          `gorm:"type:integer;not null;column:local_gb" json:"local_gb"`               // 本地磁盘总量（GB）
	HypervisorType    string         `gorm:"type:text;not null;column:hypervisor_type" json:"hypervisor_type"`    // hypervisor 类型，如 QEMU
	HypervisorVersion uint64         `gorm:"type:integer;not null;column:hypervisor_version" json:"hypervisor_version"` // major*1000000 + minor*1000 + micro
	CPUInfo           string         `gorm:"type:text;column:cpu_info" json:"cpu_info"`                           // 主机 CPU 的 XML 描述
	CreatedAt         time.Time      `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"type:datetime;not null;column:updated_at" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"type:datetime;index:idx_hosts_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (Host) TableName() string {
	return "hosts"
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// 卷状态
const (
	VolumeStatusInUse     = "in-use"    // 已附加到实例
	VolumeStatusMigrating = "migrating" // 随实例迁移中
)

// Volume 卷表
type Volume struct {
	ID         string         `gorm:"primaryKey;type:text;column:id" json:"id"`                                              // vol-{uuid}
	InstanceID string         `gorm:"type:text;index:idx_volumes_instance_id;column:instance_id" json:"instance_id"`         // 附加到的实例
	SizeGB     int64          `gorm:"type:integer;not null;column:size_gb" json:"size_gb"`                                   // 卷大小（GB）
	Status     string         `gorm:"type:text;not null;index:idx_volumes_status;column:status" json:"status"`               // in-use, migrating
	CreatedAt  time.Time      `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"type:datetime;not null;column:updated_at" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"type:datetime;index:idx_volumes_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (Volume) TableName() string {
	return "volumes"
}

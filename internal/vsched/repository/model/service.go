package model

import (
	"time"

	"gorm.io/gorm"
)

// Service 服务注册表
// 每个计算节点上的守护进程周期性上报心跳，UpdatedAt 即最近一次心跳时间
type Service struct {
	ID        string         `gorm:"primaryKey;type:text;column:id" json:"id"`                                                 // srv-{uuid}
	Host      string         `gorm:"type:text;not null;uniqueIndex:idx_services_topic_host,priority:2;column:host" json:"host"` // 所在主机名
	Topic     string         `gorm:"type:text;not null;uniqueIndex:idx_services_topic_host,priority:1;column:topic" json:"topic"` // 服务类别，如 compute
	CreatedAt time.Time      `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"type:datetime;not null;column:updated_at" json:"updated_at"` // 最近心跳时间
	DeletedAt gorm.DeletedAt `gorm:"type:datetime;index:idx_services_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (Service) TableName() string {
	return "services"
}

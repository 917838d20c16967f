package entity

import (
	"time"

	"github.com/jimyag/vsched/internal/vsched/repository/model"
	"github.com/jinzhu/copier"
)

// ServiceFromModel 将 model.Service 转换为 entity.Service
// up 在调用方按当前时间和配置的超时计算
func ServiceFromModel(m *model.Service, up bool) (*Service, error) {
	e := &Service{}
	if err := copier.Copy(e, m); err != nil {
		return nil, err
	}
	e.CreatedAt = m.CreatedAt.Format(time.RFC3339)
	e.UpdatedAt = m.UpdatedAt.Format(time.RFC3339)
	e.Up = up
	return e, nil
}

// HostFromModel 将 model.Host 转换为 entity.Host
func HostFromModel(m *model.Host) (*Host, error) {
	e := &Host{}
	if err := copier.Copy(e, m); err != nil {
		return nil, err
	}
	e.CreatedAt = m.CreatedAt.Format(time.RFC3339)
	e.UpdatedAt = m.UpdatedAt.Format(time.RFC3339)
	return e, nil
}

// InstanceFromModel 将 model.Instance 转换为 entity.Instance
func InstanceFromModel(m *model.Instance) (*Instance, error) {
	e := &Instance{}
	if err := copier.Copy(e, m); err != nil {
		return nil, err
	}
	e.CreatedAt = m.CreatedAt.Format(time.RFC3339)
	e.UpdatedAt = m.UpdatedAt.Format(time.RFC3339)
	return e, nil
}

// VolumeFromModel 将 model.Volume 转换为 entity.Volume
func VolumeFromModel(m *model.Volume) (*Volume, error) {
	e := &Volume{}
	if err := copier.Copy(e, m); err != nil {
		return nil, err
	}
	e.CreatedAt = m.CreatedAt.Format(time.RFC3339)
	e.UpdatedAt = m.UpdatedAt.Format(time.RFC3339)
	return e, nil
}

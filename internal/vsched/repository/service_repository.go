package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jimyag/vsched/internal/vsched/repository/model"
	"github.com/jimyag/vsched/pkg/apierror"
	"gorm.io/gorm"
)

// ServiceRepository 服务注册表接口
type ServiceRepository interface {
	// ListByTopic 按注册顺序返回指定 topic 的所有服务
	ListByTopic(ctx context.Context, topic string) ([]*model.Service, error)
	// GetByTopicAndHost 获取指定主机上指定 topic 的服务
	GetByTopicAndHost(ctx context.Context, topic, host string) (*model.Service, error)
	// Heartbeat 记录一次心跳，服务不存在时创建
	Heartbeat(ctx context.Context, id, topic, host string, now time.Time) (*model.Service, error)
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository 创建服务注册表
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

// ListByTopic 按注册顺序返回指定 topic 的所有服务
func (r *serviceRepository) ListByTopic(ctx context.Context, topic string) ([]*model.Service, error) {
	var services []*model.Service
	if err := r.db.WithContext(ctx).
		Where("topic = ?", topic).
		Order("created_at ASC, id ASC").
		Find(&services).Error; err != nil {
		return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "list services for topic %s", topic)
	}
	return services, nil
}

// GetByTopicAndHost 获取指定主机上指定 topic 的服务
func (r *serviceRepository) GetByTopicAndHost(ctx context.Context, topic, host string) (*model.Service, error) {
	var service model.Service
	err := r.db.WithContext(ctx).Where("topic = ? AND host = ?", topic, host).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.WrapErrorf(apierror.ErrHostNotFound, err, "no %s service on host %s", topic, host)
		}
		return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "get %s service on host %s", topic, host)
	}
	return &service, nil
}

// Heartbeat 记录一次心跳，服务不存在时创建
func (r *serviceRepository) Heartbeat(ctx context.Context, id, topic, host string, now time.Time) (*model.Service, error) {
	var service model.Service
	err := r.db.WithContext(ctx).Where("topic = ? AND host = ?", topic, host).First(&service).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		service = model.Service{
			ID:        id,
			Host:      host,
			Topic:     topic,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.db.WithContext(ctx).Create(&service).Error; err != nil {
			return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "register %s service on host %s", topic, host)
		}
		return &service, nil
	case err != nil:
		return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "get %s service on host %s", topic, host)
	}

	service.UpdatedAt = now
	if err := r.db.WithContext(ctx).Model(&service).Update("updated_at", now).Error; err != nil {
		return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "heartbeat %s service on host %s", topic, host)
	}
	return &service, nil
}

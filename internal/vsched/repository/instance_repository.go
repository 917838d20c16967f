package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jimyag/vsched/internal/vsched/repository/model"
	"github.com/jimyag/vsched/pkg/apierror"
	"gorm.io/gorm"
)

// InstanceRepository 实例注册表接口
type InstanceRepository interface {
	// GetByID 根据 ID 获取实例
	GetByID(ctx context.Context, id string) (*model.Instance, error)
	// ListByHost 列出指定主机上的所有实例
	ListByHost(ctx context.Context, host string) ([]*model.Instance, error)
	// List 列出所有实例
	List(ctx context.Context) ([]*model.Instance, error)
	// SetState 更新实例的电源状态和状态描述
	SetState(ctx context.Context, id, state, description string) error
	// Create 创建实例记录
	Create(ctx context.Context, instance *model.Instance) error
}

type instanceRepository struct {
	db *gorm.DB
}

// NewInstanceRepository 创建实例注册表
func NewInstanceRepository(db *gorm.DB) InstanceRepository {
	return &instanceRepository{db: db}
}

// GetByID 根据 ID 获取实例
func (r *instanceRepository) GetByID(ctx context.Context, id string) (*model.Instance, error) {
	var instance model.Instance
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&instance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.WrapErrorf(apierror.ErrInstanceNotFound, err, "instance %s not found", id)
		}
		return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "get instance %s", id)
	}
	return &instance, nil
}

// ListByHost 列出指定主机上的所有实例
func (r *instanceRepository) ListByHost(ctx context.Context, host string) ([]*model.Instance, error) {
	var instances []*model.Instance
	if err := r.db.WithContext(ctx).Where("host = ?", host).Find(&instances).Error; err != nil {
		return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "list instances on host %s", host)
	}
	return instances, nil
}

// List 列出所有实例
func (r *instanceRepository) List(ctx context.Context) ([]*model.Instance, error) {
	var instances []*model.Instance
	if err := r.db.WithContext(ctx).Find(&instances).Error; err != nil {
		return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "list instances")
	}
	return instances, nil
}

// SetState 更新实例的电源状态和状态描述
func (r *instanceRepository) SetState(ctx context.Context, id, state, description string) error {
	result := r.db.WithContext(ctx).Model(&model.Instance{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"state":             state,
			"state_description": description,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return apierror.WrapErrorf(apierror.ErrRegistryUnavailable, result.Error, "set state of instance %s", id)
	}
	if result.RowsAffected == 0 {
		return apierror.WrapErrorf(apierror.ErrInstanceNotFound, nil, "instance %s not found", id)
	}
	return nil
}

// Create 创建实例记录
func (r *instanceRepository) Create(ctx context.Context, instance *model.Instance) error {
	if err := r.db.WithContext(ctx).Create(instance).Error; err != nil {
		return apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "create instance %s", instance.ID)
	}
	return nil
}

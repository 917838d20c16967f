package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jimyag/vsched/internal/vsched/repository/model"
	"github.com/jimyag/vsched/pkg/apierror"
	"gorm.io/gorm"
)

// VolumeRepository 卷注册表接口
type VolumeRepository interface {
	// ListByInstance 列出附加到指定实例的所有卷
	ListByInstance(ctx context.Context, instanceID string) ([]*model.Volume, error)
	// UpdateStatus 更新卷状态
	UpdateStatus(ctx context.Context, id, status string) error
	// Create 创建卷记录
	Create(ctx context.Context, volume *model.Volume) error
	// GetByID 根据 ID 获取卷
	GetByID(ctx context.Context, id string) (*model.Volume, error)
}

type volumeRepository struct {
	db *gorm.DB
}

// NewVolumeRepository 创建卷注册表
func NewVolumeRepository(db *gorm.DB) VolumeRepository {
	return &volumeRepository{db: db}
}

// ListByInstance 列出附加到指定实例的所有卷
func (r *volumeRepository) ListByInstance(ctx context.Context, instanceID string) ([]*model.Volume, error) {
	var volumes []*model.Volume
	if err := r.db.WithContext(ctx).Where("instance_id = ?", instanceID).Find(&volumes).Error; err != nil {
		return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "list volumes of instance %s", instanceID)
	}
	return volumes, nil
}

// UpdateStatus 更新卷状态
func (r *volumeRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).Model(&model.Volume{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return apierror.WrapErrorf(apierror.ErrRegistryUnavailable, result.Error, "update status of volume %s", id)
	}
	if result.RowsAffected == 0 {
		return apierror.WrapErrorf(apierror.ErrVolumeNotFound, nil, "volume %s not found", id)
	}
	return nil
}

// Create 创建卷记录
func (r *volumeRepository) Create(ctx context.Context, volume *model.Volume) error {
	if err := r.db.WithContext(ctx).Create(volume).Error; err != nil {
		return apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "create volume %s", volume.ID)
	}
	return nil
}

// GetByID 根据 ID 获取卷
func (r *volumeRepository) GetByID(ctx context.Context, id string) (*model.Volume, error) {
	var volume model.Volume
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&volume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.WrapErrorf(apierror.ErrVolumeNotFound, err, "volume %s not found", id)
		}
		return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "get volume %s", id)
	}
	return &volume, nil
}

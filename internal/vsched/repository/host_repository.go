package repository

import (
	"context"
	"errors"

	"github.com/jimyag/vsched/internal/vsched/repository/model"
	"github.com/jimyag/vsched/pkg/apierror"
	"gorm.io/gorm"
)

// HostRepository 主机注册表接口
type HostRepository interface {
	// GetByName 根据主机名获取主机
	GetByName(ctx context.Context, name string) (*model.Host, error)
	// List 列出所有主机
	List(ctx context.Context) ([]*model.Host, error)
	// Upsert 创建或更新主机记录（节点注册时自报容量和 hypervisor 信息）
	Upsert(ctx context.Context, host *model.Host) error
}

type hostRepository struct {
	db *gorm.DB
}

// NewHostRepository 创建主机注册表
func NewHostRepository(db *gorm.DB) HostRepository {
	return &hostRepository{db: db}
}

// GetByName 根据主机名获取主机
func (r *hostRepository) GetByName(ctx context.Context, name string) (*model.Host, error) {
	var host model.Host
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&host).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.WrapErrorf(apierror.ErrHostNotFound, err, "host %s not found", name)
		}
		return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "get host %s", name)
	}
	return &host, nil
}

// List 列出所有主机
func (r *hostRepository) List(ctx context.Context) ([]*model.Host, error) {
	var hosts []*model.Host
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&hosts).Error; err != nil {
		return nil, apierror.WrapError(apierror.ErrRegistryUnavailable, "list hosts", err)
	}
	return hosts, nil
}

// Upsert 创建或更新主机记录
func (r *hostRepository) Upsert(ctx context.Context, host *model.Host) error {
	if err := r.db.WithContext(ctx).Save(host).Error; err != nil {
		return apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "upsert host %s", host.Name)
	}
	return nil
}

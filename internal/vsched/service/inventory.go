package service

import (
	"context"

	"github.com/jimyag/vsched/internal/vsched/entity"
	"github.com/jimyag/vsched/internal/vsched/repository"
	"github.com/jimyag/vsched/internal/vsched/repository/model"
	"github.com/jimyag/vsched/pkg/apierror"
	"github.com/jimyag/vsched/pkg/idgen"
	"github.com/rs/zerolog"
)

// InventoryService 实例和卷的登记服务
// 调度器只消费这些记录，实际的虚拟机生命周期由计算节点管理
type InventoryService struct {
	instances repository.InstanceRepository
	volumes   repository.VolumeRepository
	idGen     *idgen.Generator
}

// NewInventoryService 创建登记服务
func NewInventoryService(
	instances repository.InstanceRepository,
	volumes repository.VolumeRepository,
) *InventoryService {
	return &InventoryService{
		instances: instances,
		volumes:   volumes,
		idGen:     idgen.New(),
	}
}

// CreateInstance 登记一个实例，登记后即进入 running 状态
func (s *InventoryService) CreateInstance(ctx context.Context, req *entity.CreateInstanceRequest) (*entity.Instance, error) {
	logger := zerolog.Ctx(ctx)

	id := req.ID
	if id == "" {
		var err error
		id, err = s.idGen.GenerateInstanceID()
		if err != nil {
			logger.Error().Err(err).Msg("Failed to generate instance ID")
			return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "generate instance id")
		}
	}

	instance := &model.Instance{
		ID:               id,
		Hostname:         req.Hostname,
		Host:             req.Host,
		LaunchedOn:       req.Host,
		VCPUs:            req.VCPUs,
		MemoryMB:         req.MemoryMB,
		LocalGB:          req.LocalGB,
		State:            model.PowerStateRunning,
		StateDescription: model.StateDescriptionRunning,
	}
	if err := s.instances.Create(ctx, instance); err != nil {
		logger.Error().Str("instance_id", id).Err(err).Msg("Failed to create instance")
		return nil, err
	}

	logger.Info().
		Str("instance_id", id).
		Str("host", req.Host).
		Msg("Instance registered")

	return entity.InstanceFromModel(instance)
}

// GetInstance 查询单个实例
func (s *InventoryService) GetInstance(ctx context.Context, req *entity.GetInstanceRequest) (*entity.Instance, error) {
	instance, err := s.instances.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return entity.InstanceFromModel(instance)
}

// ListInstances 列出实例，host 非空时按主机过滤
func (s *InventoryService) ListInstances(ctx context.Context, req *entity.ListInstancesRequest) (*entity.ListInstancesResponse, error) {
	var (
		instances []*model.Instance
		err       error
	)
	if req.Host != "" {
		instances, err = s.instances.ListByHost(ctx, req.Host)
	} else {
		instances, err = s.instances.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	result := make([]*entity.Instance, 0, len(instances))
	for _, instance := range instances {
		e, err := entity.InstanceFromModel(instance)
		if err != nil {
			return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "convert instance %s", instance.ID)
		}
		result = append(result, e)
	}
	return &entity.ListInstancesResponse{Instances: result}, nil
}

// CreateVolume 登记一个附加到实例的卷
func (s *InventoryService) CreateVolume(ctx context.Context, req *entity.CreateVolumeRequest) (*entity.Volume, error) {
	logger := zerolog.Ctx(ctx)

	// 卷必须附加到已登记的实例
	if _, err := s.instances.GetByID(ctx, req.InstanceID); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		var err error
		id, err = s.idGen.GenerateVolumeID()
		if err != nil {
			logger.Error().Err(err).Msg("Failed to generate volume ID")
			return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "generate volume id")
		}
	}

	volume := &model.Volume{
		ID:         id,
		InstanceID: req.InstanceID,
		SizeGB:     req.SizeGB,
		Status:     model.VolumeStatusInUse,
	}
	if err := s.volumes.Create(ctx, volume); err != nil {
		logger.Error().Str("volume_id", id).Err(err).Msg("Failed to create volume")
		return nil, err
	}

	logger.Info().
		Str("volume_id", id).
		Str("instance_id", req.InstanceID).
		Msg("Volume registered")

	return entity.VolumeFromModel(volume)
}

// ListVolumes 列出附加到指定实例的卷
func (s *InventoryService) ListVolumes(ctx context.Context, req *entity.ListVolumesRequest) (*entity.ListVolumesResponse, error) {
	volumes, err := s.volumes.ListByInstance(ctx, req.InstanceID)
	if err != nil {
		return nil, err
	}

	result := make([]*entity.Volume, 0, len(volumes))
	for _, volume := range volumes {
		e, err := entity.VolumeFromModel(volume)
		if err != nil {
			return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "convert volume %s", volume.ID)
		}
		result = append(result, e)
	}
	return &entity.ListVolumesResponse{Volumes: result}, nil
}

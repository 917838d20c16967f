package service

import (
	"context"
	"time"

	"github.com/jimyag/vsched/internal/vsched/entity"
	"github.com/jimyag/vsched/internal/vsched/repository"
	"github.com/jimyag/vsched/internal/vsched/repository/model"
	"github.com/jimyag/vsched/internal/vsched/scheduler"
	"github.com/jimyag/vsched/pkg/apierror"
	"github.com/jimyag/vsched/pkg/compute"
	"github.com/jimyag/vsched/pkg/idgen"
	"github.com/rs/zerolog"
)

// RegistryService 服务和主机注册表
type RegistryService struct {
	services repository.ServiceRepository
	hosts    repository.HostRepository
	pool     *compute.Pool
	downTime time.Duration
	idGen    *idgen.Generator
}

// NewRegistryService 创建注册表服务
// downTime 是心跳超时阈值，超过视为服务下线
func NewRegistryService(
	services repository.ServiceRepository,
	hosts repository.HostRepository,
	pool *compute.Pool,
	downTime time.Duration,
) *RegistryService {
	return &RegistryService{
		services: services,
		hosts:    hosts,
		pool:     pool,
		downTime: downTime,
		idGen:    idgen.New(),
	}
}

// Heartbeat 记录一次服务心跳，服务首次上报时注册
func (s *RegistryService) Heartbeat(ctx context.Context, req *entity.HeartbeatRequest) (*entity.Service, error) {
	logger := zerolog.Ctx(ctx)

	id := req.ID
	if id == "" {
		var err error
		id, err = s.idGen.GenerateServiceID()
		if err != nil {
			logger.Error().Err(err).Msg("Failed to generate service ID")
			return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "generate service id")
		}
	}

	now := time.Now()
	svc, err := s.services.Heartbeat(ctx, id, req.Topic, req.Host, now)
	if err != nil {
		logger.Error().
			Str("topic", req.Topic).
			Str("host", req.Host).
			Err(err).
			Msg("Failed to record heartbeat")
		return nil, err
	}

	return entity.ServiceFromModel(svc, scheduler.ServiceIsUp(svc, now, s.downTime))
}

// ListServices 列出指定 topic 的服务，附带按当前时间计算的在线状态
func (s *RegistryService) ListServices(ctx context.Context, req *entity.ListServicesRequest) (*entity.ListServicesResponse, error) {
	topic := req.Topic
	if topic == "" {
		topic = scheduler.TopicCompute
	}

	services, err := s.services.ListByTopic(ctx, topic)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]*entity.Service, 0, len(services))
	for _, svc := range services {
		e, err := entity.ServiceFromModel(svc, scheduler.ServiceIsUp(svc, now, s.downTime))
		if err != nil {
			return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "convert service %s", svc.ID)
		}
		result = append(result, e)
	}
	return &entity.ListServicesResponse{Services: result}, nil
}

// RegisterHost 注册或更新主机的能力信息
func (s *RegistryService) RegisterHost(ctx context.Context, req *entity.RegisterHostRequest) (*entity.Host, error) {
	logger := zerolog.Ctx(ctx)

	host := &model.Host{
		Name:              req.Name,
		URI:               req.URI,
		VCPUs:             req.VCPUs,
		MemoryMB:          req.MemoryMB,
		LocalGB:           req.LocalGB,
		HypervisorType:    req.HypervisorType,
		HypervisorVersion: req.HypervisorVersion,
		CPUInfo:           req.CPUInfo,
	}
	if err := s.hosts.Upsert(ctx, host); err != nil {
		logger.Error().Str("host", req.Name).Err(err).Msg("Failed to register host")
		return nil, err
	}

	logger.Info().
		Str("host", req.Name).
		Str("hypervisor_type", req.HypervisorType).
		Uint64("hypervisor_version", req.HypervisorVersion).
		Msg("Host registered")

	registered, err := s.hosts.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	return entity.HostFromModel(registered)
}

// DiscoverHost 连接节点的 libvirt 采集能力信息后注册
// hypervisor 类型、版本和 CPU 描述都从节点自报的信息中取得
func (s *RegistryService) DiscoverHost(ctx context.Context, req *entity.DiscoverHostRequest) (*entity.Host, error) {
	logger := zerolog.Ctx(ctx)

	client, err := s.pool.Get(req.Name, req.URI)
	if err != nil {
		logger.Error().Str("host", req.Name).Str("uri", req.URI).Err(err).Msg("Failed to connect compute node")
		return nil, apierror.WrapErrorf(apierror.ErrHostUnreachable, err, "connect %s", req.URI)
	}

	info, err := client.HostInfo(ctx)
	if err != nil {
		// 连接可能已经坏掉，下次访问重新建连
		s.pool.Forget(req.Name)
		logger.Error().Str("host", req.Name).Err(err).Msg("Failed to collect host info")
		return nil, apierror.WrapErrorf(apierror.ErrHostUnreachable, err, "collect host info of %s", req.Name)
	}

	return s.RegisterHost(ctx, &entity.RegisterHostRequest{
		Name:              req.Name,
		URI:               req.URI,
		VCPUs:             int64(info.VCPUs),
		MemoryMB:          int64(info.MemoryMB),
		LocalGB:           req.LocalGB,
		HypervisorType:    info.HypervisorType,
		HypervisorVersion: info.HypervisorVersion,
		CPUInfo:           info.CPUXML,
	})
}

// ListHosts 列出所有主机
func (s *RegistryService) ListHosts(ctx context.Context) (*entity.ListHostsResponse, error) {
	hosts, err := s.hosts.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*entity.Host, 0, len(hosts))
	for _, host := range hosts {
		e, err := entity.HostFromModel(host)
		if err != nil {
			return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "convert host %s", host.Name)
		}
		result = append(result, e)
	}
	return &entity.ListHostsResponse{Hosts: result}, nil
}

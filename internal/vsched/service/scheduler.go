// Package service 实现调度和注册表的业务逻辑
package service

import (
	"context"

	"github.com/jimyag/vsched/internal/vsched/entity"
	"github.com/jimyag/vsched/internal/vsched/scheduler"
	"github.com/jimyag/vsched/pkg/apierror"
	"github.com/jimyag/vsched/pkg/idgen"
	"github.com/rs/zerolog"
)

// SchedulerService 调度服务
type SchedulerService struct {
	sched scheduler.Scheduler
	base  *scheduler.Base
	idGen *idgen.Generator
}

// NewSchedulerService 创建调度服务
// sched 是按配置选择的调度策略，base 提供热迁移和在线主机查询
func NewSchedulerService(sched scheduler.Scheduler, base *scheduler.Base) *SchedulerService {
	return &SchedulerService{
		sched: sched,
		base:  base,
		idGen: idgen.New(),
	}
}

// Schedule 为一次资源请求挑选主机
func (s *SchedulerService) Schedule(ctx context.Context, req *entity.ScheduleRequest) (*entity.ScheduleResponse, error) {
	logger := zerolog.Ctx(ctx)

	topic := req.Topic
	if topic == "" {
		topic = scheduler.TopicCompute
	}

	requestID, err := s.idGen.GenerateRequestID()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate request ID")
		return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "generate request id")
	}

	host, err := s.sched.Schedule(ctx, topic, &scheduler.Request{
		AvailabilityHost: req.AvailabilityHost,
		VCPUs:            req.VCPUs,
		MemoryMB:         req.MemoryMB,
		LocalGB:          req.LocalGB,
	})
	if err != nil {
		logger.Error().
			Str("request_id", requestID).
			Str("topic", topic).
			Err(err).
			Msg("Failed to schedule")
		return nil, err
	}

	logger.Info().
		Str("request_id", requestID).
		Str("topic", topic).
		Str("host", host).
		Msg("Scheduled")

	return &entity.ScheduleResponse{Host: host}, nil
}

// LiveMigrate 校验并提交一次热迁移，返回源主机
func (s *SchedulerService) LiveMigrate(ctx context.Context, req *entity.LiveMigrationRequest) (*entity.LiveMigrationResponse, error) {
	logger := zerolog.Ctx(ctx)

	migrationID, err := s.idGen.GenerateMigrationID()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate migration ID")
		return nil, apierror.WrapErrorf(apierror.ErrRegistryUnavailable, err, "generate migration id")
	}

	src, err := s.base.ScheduleLiveMigration(ctx, req.InstanceID, req.Dest)
	if err != nil {
		logger.Error().
			Str("migration_id", migrationID).
			Str("instance_id", req.InstanceID).
			Str("dest", req.Dest).
			Err(err).
			Msg("Failed to schedule live migration")
		return nil, err
	}

	logger.Info().
		Str("migration_id", migrationID).
		Str("instance_id", req.InstanceID).
		Str("src", src).
		Str("dest", req.Dest).
		Msg("Live migration scheduled")

	return &entity.LiveMigrationResponse{SourceHost: src}, nil
}

// UpHosts 返回指定 topic 下当前在线的主机，保持注册顺序
func (s *SchedulerService) UpHosts(ctx context.Context, req *entity.UpHostsRequest) (*entity.UpHostsResponse, error) {
	topic := req.Topic
	if topic == "" {
		topic = scheduler.TopicCompute
	}

	hosts, err := s.base.HostsUp(ctx, topic)
	if err != nil {
		return nil, err
	}
	return &entity.UpHostsResponse{Hosts: hosts}, nil
}

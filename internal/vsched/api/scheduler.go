package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/vsched/internal/vsched/entity"
	"github.com/jimyag/vsched/internal/vsched/service"
	"github.com/jimyag/vsched/pkg/ginx"
	"github.com/rs/zerolog"
)

// SchedulerServiceInterface 定义调度服务的接口
type SchedulerServiceInterface interface {
	Schedule(ctx context.Context, req *entity.ScheduleRequest) (*entity.ScheduleResponse, error)
	LiveMigrate(ctx context.Context, req *entity.LiveMigrationRequest) (*entity.LiveMigrationResponse, error)
	UpHosts(ctx context.Context, req *entity.UpHostsRequest) (*entity.UpHostsResponse, error)
}

type Scheduler struct {
	schedulerService SchedulerServiceInterface
}

func NewScheduler(schedulerService *service.SchedulerService) *Scheduler {
	return &Scheduler{
		schedulerService: schedulerService,
	}
}

func (s *Scheduler) RegisterRoutes(router *gin.RouterGroup) {
	schedulerRouter := router.Group("/scheduler")
	schedulerRouter.POST("/schedule", ginx.AdaptArgs(s.Schedule))
	schedulerRouter.POST("/live-migrate", ginx.AdaptArgs(s.LiveMigrate))
	schedulerRouter.GET("/up-hosts", ginx.AdaptArgs(s.UpHosts))
}

func (s *Scheduler) Schedule(ctx *gin.Context, req *entity.ScheduleRequest) (*entity.ScheduleResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Interface("request", req).
		Msg("Schedule called")

	resp, err := s.schedulerService.Schedule(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Scheduler) LiveMigrate(ctx *gin.Context, req *entity.LiveMigrationRequest) (*entity.LiveMigrationResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("instance_id", req.InstanceID).
		Str("dest", req.Dest).
		Msg("LiveMigrate called")

	resp, err := s.schedulerService.LiveMigrate(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Scheduler) UpHosts(ctx *gin.Context, req *entity.UpHostsRequest) (*entity.UpHostsResponse, error) {
	return s.schedulerService.UpHosts(ctx, req)
}

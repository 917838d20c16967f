// Package vsched 提供调度服务器的主入口和初始化逻辑
package vsched

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jimmicro/grace"
	"github.com/jimyag/vsched/internal/vsched/api"
	"github.com/jimyag/vsched/internal/vsched/config"
	"github.com/jimyag/vsched/internal/vsched/repository"
	"github.com/jimyag/vsched/internal/vsched/scheduler"
	"github.com/jimyag/vsched/internal/vsched/service"
	"github.com/jimyag/vsched/pkg/compute"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg  *config.Config
	api  *api.API
	repo *repository.Repository
	pool *compute.Pool
}

func New(cfg *config.Config) (*Server, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger

	// 1. 创建注册表存储
	repo, err := repository.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("create repository: %w", err)
	}
	logger.Info().Str("db_path", cfg.DBPath).Msg("Repository initialized")

	serviceRepo := repository.NewServiceRepository(repo.DB())
	hostRepo := repository.NewHostRepository(repo.DB())
	instanceRepo := repository.NewInstanceRepository(repo.DB())
	volumeRepo := repository.NewVolumeRepository(repo.DB())

	// 2. 创建计算节点客户端池
	pool := compute.NewPool(nil)

	// 3. 创建调度器
	base := scheduler.NewBase(
		serviceRepo, hostRepo, instanceRepo, volumeRepo,
		pool, cfg.ServiceDownTime(), cfg.ProbeTimeout(),
	)
	var sched scheduler.Scheduler
	switch cfg.Scheduler {
	case config.SchedulerChance:
		sched = scheduler.NewChanceScheduler(base)
	default:
		sched = scheduler.NewSimpleScheduler(base)
	}
	logger.Info().Str("scheduler", cfg.Scheduler).Msg("Scheduler initialized")

	// 4. 创建业务服务
	schedulerService := service.NewSchedulerService(sched, base)
	registryService := service.NewRegistryService(serviceRepo, hostRepo, pool, cfg.ServiceDownTime())
	inventoryService := service.NewInventoryService(instanceRepo, volumeRepo)

	// 5. 创建 API
	apiInstance, err := api.New(cfg.Address, schedulerService, registryService, inventoryService)
	if err != nil {
		return nil, err
	}

	server := &Server{
		cfg:  cfg,
		api:  apiInstance,
		repo: repo,
		pool: pool,
	}
	return server, nil
}

func (s *Server) Run(ctx context.Context) error {
	// 使用 grace.Shepherd 管理服务生命周期
	services := []grace.Grace{
		s.api,
	}

	shepherd := grace.NewShepherd(
		services,
		grace.WithTimeout(30*time.Second),
		grace.WithLogger(&zerologLogger{}),
	)

	shepherd.Start(ctx)

	// API 退出后释放客户端连接和存储
	if err := s.pool.Close(); err != nil {
		zerolog.DefaultContextLogger.Error().Err(err).Msg("Failed to close compute client pool")
	}
	return s.repo.Close()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.api.Shutdown(ctx)
}

// Name 实现 grace.Grace 接口
func (s *Server) Name() string {
	return "vsched Server"
}

// zerologLogger 实现 grace.Logger 接口
type zerologLogger struct{}

func (l *zerologLogger) Info(msg string, args ...interface{}) {
	logger := zerolog.DefaultContextLogger.Info()
	// 如果有参数，使用 Msgf 格式化消息
	if len(args) > 0 {
		logger.Msgf(msg, args...)
	} else {
		logger.Msg(msg)
	}
}

func (l *zerologLogger) Error(msg string, args ...interface{}) {
	logger := zerolog.DefaultContextLogger.Error()
	// 如果有参数，使用 Msgf 格式化消息
	if len(args) > 0 {
		logger.Msgf(msg, args...)
	} else {
		logger.Msg(msg)
	}
}

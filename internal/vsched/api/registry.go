package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/vsched/internal/vsched/entity"
	"github.com/jimyag/vsched/internal/vsched/service"
	"github.com/jimyag/vsched/pkg/ginx"
	"github.com/rs/zerolog"
)

// RegistryServiceInterface 定义注册表服务的接口
type RegistryServiceInterface interface {
	Heartbeat(ctx context.Context, req *entity.HeartbeatRequest) (*entity.Service, error)
	ListServices(ctx context.Context, req *entity.ListServicesRequest) (*entity.ListServicesResponse, error)
	RegisterHost(ctx context.Context, req *entity.RegisterHostRequest) (*entity.Host, error)
	DiscoverHost(ctx context.Context, req *entity.DiscoverHostRequest) (*entity.Host, error)
	ListHosts(ctx context.Context) (*entity.ListHostsResponse, error)
}

type Registry struct {
	registryService RegistryServiceInterface
}

func NewRegistry(registryService *service.RegistryService) *Registry {
	return &Registry{
		registryService: registryService,
	}
}

func (r *Registry) RegisterRoutes(router *gin.RouterGroup) {
	serviceRouter := router.Group("/services")
	serviceRouter.POST("/heartbeat", ginx.AdaptArgs(r.Heartbeat))
	serviceRouter.GET("", ginx.AdaptArgs(r.ListServices))

	hostRouter := router.Group("/hosts")
	hostRouter.POST("", ginx.AdaptArgs(r.RegisterHost))
	hostRouter.POST("/discover", ginx.AdaptArgs(r.DiscoverHost))
	hostRouter.GET("", ginx.Adapt(r.ListHosts))
}

func (r *Registry) Heartbeat(ctx *gin.Context, req *entity.HeartbeatRequest) (*entity.Service, error) {
	return r.registryService.Heartbeat(ctx, req)
}

func (r *Registry) ListServices(ctx *gin.Context, req *entity.ListServicesRequest) (*entity.ListServicesResponse, error) {
	return r.registryService.ListServices(ctx, req)
}

func (r *Registry) RegisterHost(ctx *gin.Context, req *entity.RegisterHostRequest) (*entity.Host, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("host", req.Name).
		Msg("RegisterHost called")

	return r.registryService.RegisterHost(ctx, req)
}

func (r *Registry) DiscoverHost(ctx *gin.Context, req *entity.DiscoverHostRequest) (*entity.Host, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("host", req.Name).
		Str("uri", req.URI).
		Msg("DiscoverHost called")

	return r.registryService.DiscoverHost(ctx, req)
}

func (r *Registry) ListHosts(ctx *gin.Context) (*entity.ListHostsResponse, error) {
	return r.registryService.ListHosts(ctx)
}

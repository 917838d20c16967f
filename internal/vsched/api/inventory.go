package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/vsched/internal/vsched/entity"
	"github.com/jimyag/vsched/internal/vsched/service"
	"github.com/jimyag/vsched/pkg/ginx"
	"github.com/rs/zerolog"
)

// InventoryServiceInterface 定义登记服务的接口
type InventoryServiceInterface interface {
	CreateInstance(ctx context.Context, req *entity.CreateInstanceRequest) (*entity.Instance, error)
	GetInstance(ctx context.Context, req *entity.GetInstanceRequest) (*entity.Instance, error)
	ListInstances(ctx context.Context, req *entity.ListInstancesRequest) (*entity.ListInstancesResponse, error)
	CreateVolume(ctx context.Context, req *entity.CreateVolumeRequest) (*entity.Volume, error)
	ListVolumes(ctx context.Context, req *entity.ListVolumesRequest) (*entity.ListVolumesResponse, error)
}

type Inventory struct {
	inventoryService InventoryServiceInterface
}

func NewInventory(inventoryService *service.InventoryService) *Inventory {
	return &Inventory{
		inventoryService: inventoryService,
	}
}

func (i *Inventory) RegisterRoutes(router *gin.RouterGroup) {
	instanceRouter := router.Group("/instances")
	instanceRouter.POST("", ginx.AdaptArgs(i.CreateInstance))
	instanceRouter.GET("", ginx.AdaptArgs(i.ListInstances))
	instanceRouter.GET("/:id", ginx.AdaptArgs(i.GetInstance))
	instanceRouter.GET("/:id/volumes", ginx.AdaptArgs(i.ListVolumes))

	volumeRouter := router.Group("/volumes")
	volumeRouter.POST("", ginx.AdaptArgs(i.CreateVolume))
}

func (i *Inventory) CreateInstance(ctx *gin.Context, req *entity.CreateInstanceRequest) (*entity.Instance, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("hostname", req.Hostname).
		Str("host", req.Host).
		Msg("CreateInstance called")

	return i.inventoryService.CreateInstance(ctx, req)
}

func (i *Inventory) GetInstance(ctx *gin.Context, req *entity.GetInstanceRequest) (*entity.Instance, error) {
	return i.inventoryService.GetInstance(ctx, req)
}

func (i *Inventory) ListInstances(ctx *gin.Context, req *entity.ListInstancesRequest) (*entity.ListInstancesResponse, error) {
	return i.inventoryService.ListInstances(ctx, req)
}

func (i *Inventory) CreateVolume(ctx *gin.Context, req *entity.CreateVolumeRequest) (*entity.Volume, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("instance_id", req.InstanceID).
		Msg("CreateVolume called")

	return i.inventoryService.CreateVolume(ctx, req)
}

func (i *Inventory) ListVolumes(ctx *gin.Context, req *entity.ListVolumesRequest) (*entity.ListVolumesResponse, error) {
	return i.inventoryService.ListVolumes(ctx, req)
}

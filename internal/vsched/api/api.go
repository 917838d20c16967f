// Package api 提供 HTTP API
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/vsched/internal/vsched/service"
)

type API struct {
	engine *gin.Engine
	server *http.Server

	scheduler *Scheduler
	registry  *Registry
	inventory *Inventory
}

func New(
	addr string,
	schedulerService *service.SchedulerService,
	registryService *service.RegistryService,
	inventoryService *service.InventoryService,
) (*API, error) {
	engine := gin.Default()
	api := &API{
		engine:    engine,
		scheduler: NewScheduler(schedulerService),
		registry:  NewRegistry(registryService),
		inventory: NewInventory(inventoryService),
	}

	group := engine.Group("/api")
	api.scheduler.RegisterRoutes(group)
	api.registry.RegisterRoutes(group)
	api.inventory.RegisterRoutes(group)

	api.server = &http.Server{
		Addr:    addr,
		Handler: engine,
	}
	return api, nil
}

func (a *API) Run(ctx context.Context) error {
	return a.server.ListenAndServe()
}

func (a *API) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// Name 实现 grace.Grace 接口
func (a *API) Name() string {
	return "api"
}

// Package scheduler 提供集群的调度和迁移决策逻辑
//
// Base 提供所有调度策略共用的原语：服务在线判断、在线主机集合、
// 热迁移的前置校验和状态提交。具体的放置算法由实现了 Scheduler
// 接口的策略提供，Base 自身的 Schedule 返回 NotImplemented。
package scheduler

import (
	"context"
	"time"

	"github.com/jimyag/vsched/internal/vsched/repository"
	"github.com/jimyag/vsched/internal/vsched/repository/model"
	"github.com/jimyag/vsched/pkg/apierror"
	"github.com/jimyag/vsched/pkg/compute"
)

// TopicCompute 计算节点的服务类别
const TopicCompute = "compute"

// Request 一次调度请求的参数
type Request struct {
	// AvailabilityHost 指定要调度到的主机（可选）
	// 指定后策略只校验该主机是否可用，不可用时返回 WillNotSchedule
	AvailabilityHost string `json:"availability_host"`

	// 资源需求，容量敏感的策略使用
	VCPUs    int64 `json:"vcpus"`
	MemoryMB int64 `json:"memory_mb"`
	LocalGB  int64 `json:"local_gb"`
}

// Scheduler 调度器接口
// 每个可部署的调度策略都必须实现 Schedule
type Scheduler interface {
	// Schedule 为请求选择一台主机，返回主机名
	Schedule(ctx context.Context, topic string, req *Request) (string, error)
}

// Base 调度器基础实现
// 持有注册表和远程探测客户端，为具体策略提供公共原语
type Base struct {
	services  repository.ServiceRepository
	hosts     repository.HostRepository
	instances repository.InstanceRepository
	volumes   repository.VolumeRepository
	pool      *compute.Pool

	downTime     time.Duration // 心跳超时
	probeTimeout time.Duration // 远程探测超时
}

// NewBase 创建调度器基础实现
func NewBase(
	services repository.ServiceRepository,
	hosts repository.HostRepository,
	instances repository.InstanceRepository,
	volumes repository.VolumeRepository,
	pool *compute.Pool,
	downTime time.Duration,
	probeTimeout time.Duration,
) *Base {
	return &Base{
		services:     services,
		hosts:        hosts,
		instances:    instances,
		volumes:      volumes,
		pool:         pool,
		downTime:     downTime,
		probeTimeout: probeTimeout,
	}
}

// ServiceIsUp 按当前时间判断服务是否在线
func (b *Base) ServiceIsUp(service *model.Service) bool {
	return ServiceIsUp(service, time.Now(), b.downTime)
}

// DownTime 返回配置的心跳超时
func (b *Base) DownTime() time.Duration {
	return b.downTime
}

// HostsUp 返回指定 topic 下所有在线服务的主机名
// 顺序与注册表一致，调用方不应依赖该顺序做公平性假设
func (b *Base) HostsUp(ctx context.Context, topic string) ([]string, error) {
	services, err := b.services.ListByTopic(ctx, topic)
	if err != nil {
		return nil, err
	}

	hosts := make([]string, 0, len(services))
	for _, service := range services {
		if b.ServiceIsUp(service) {
			hosts = append(hosts, service.Host)
		}
	}
	return hosts, nil
}

// Schedule 基础实现没有放置算法
// 每个可部署的调度策略都必须覆盖该方法
func (b *Base) Schedule(ctx context.Context, topic string, req *Request) (string, error) {
	return "", apierror.ErrNotImplemented
}

// 编译时检查 Base 实现了 Scheduler 接口
var _ Scheduler = (*Base)(nil)

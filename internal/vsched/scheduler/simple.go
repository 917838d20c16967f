package scheduler

import (
	"context"
	"errors"
	"slices"

	"github.com/jimyag/vsched/pkg/apierror"
)

// SimpleScheduler 最少负载调度策略
// 在指定 topic 的在线主机中选择实例数最少、且容量严格满足
// 请求需求的一台
type SimpleScheduler struct {
	*Base
}

// NewSimpleScheduler 创建最少负载调度策略
func NewSimpleScheduler(base *Base) *SimpleScheduler {
	return &SimpleScheduler{Base: base}
}

// Schedule 选择实例数最少且容量满足需求的在线主机
// 请求指定了 AvailabilityHost 时只校验该主机是否在线且容量满足
func (s *SimpleScheduler) Schedule(ctx context.Context, topic string, req *Request) (string, error) {
	hosts, err := s.HostsUp(ctx, topic)
	if err != nil {
		return "", err
	}

	if req == nil {
		req = &Request{}
	}

	if req.AvailabilityHost != "" {
		if !slices.Contains(hosts, req.AvailabilityHost) {
			return "", apierror.WrapErrorf(apierror.ErrWillNotSchedule, nil,
				"host %s is not up or doesn't exist", req.AvailabilityHost)
		}
		ok, err := s.fits(ctx, req.AvailabilityHost, req)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", apierror.WrapErrorf(apierror.ErrWillNotSchedule, nil,
				"host %s doesn't have enough resource", req.AvailabilityHost)
		}
		return req.AvailabilityHost, nil
	}

	best := ""
	bestCount := -1
	for _, host := range hosts {
		instances, err := s.instances.ListByHost(ctx, host)
		if err != nil {
			return "", err
		}
		if bestCount >= 0 && len(instances) >= bestCount {
			continue
		}
		ok, err := s.fits(ctx, host, req)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		best = host
		bestCount = len(instances)
	}

	if best == "" {
		return "", apierror.WrapErrorf(apierror.ErrNoValidHost, nil,
			"no hosts with enough resource for topic %s", topic)
	}
	return best, nil
}

// fits 检查主机的剩余容量是否严格满足请求的资源需求
// 主机没有注册容量记录时视为不满足
func (s *SimpleScheduler) fits(ctx context.Context, hostName string, req *Request) (bool, error) {
	if req.VCPUs == 0 && req.MemoryMB == 0 && req.LocalGB == 0 {
		return true, nil
	}

	host, err := s.hosts.GetByName(ctx, hostName)
	if err != nil {
		if errors.Is(err, apierror.ErrHostNotFound) {
			return false, nil
		}
		return false, err
	}

	remainingCPU := host.VCPUs
	remainingMem := host.MemoryMB
	remainingHDD := host.LocalGB

	instances, err := s.instances.ListByHost(ctx, hostName)
	if err != nil {
		return false, err
	}
	for _, placed := range instances {
		remainingCPU -= placed.VCPUs
		remainingMem -= placed.MemoryMB
		remainingHDD -= placed.LocalGB
	}

	return remainingCPU > req.VCPUs && remainingMem > req.MemoryMB && remainingHDD > req.LocalGB, nil
}

// 编译时检查 SimpleScheduler 实现了 Scheduler 接口
var _ Scheduler = (*SimpleScheduler)(nil)

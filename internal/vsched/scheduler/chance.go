package scheduler

import (
	"context"
	"math/rand"
	"slices"

	"github.com/jimyag/vsched/pkg/apierror"
)

// ChanceScheduler 随机调度策略
// 在指定 topic 的在线主机中随机选择一台
type ChanceScheduler struct {
	*Base
}

// NewChanceScheduler 创建随机调度策略
func NewChanceScheduler(base *Base) *ChanceScheduler {
	return &ChanceScheduler{Base: base}
}

// Schedule 随机选择一台在线主机
// 请求指定了 AvailabilityHost 时只校验该主机是否在线
func (s *ChanceScheduler) Schedule(ctx context.Context, topic string, req *Request) (string, error) {
	hosts, err := s.HostsUp(ctx, topic)
	if err != nil {
		return "", err
	}

	if req != nil && req.AvailabilityHost != "" {
		if !slices.Contains(hosts, req.AvailabilityHost) {
			return "", apierror.WrapErrorf(apierror.ErrWillNotSchedule, nil,
				"host %s is not up or doesn't exist", req.AvailabilityHost)
		}
		return req.AvailabilityHost, nil
	}

	if len(hosts) == 0 {
		return "", apierror.WrapErrorf(apierror.ErrNoValidHost, nil,
			"no hosts up for topic %s", topic)
	}

	return hosts[rand.Intn(len(hosts))], nil
}

// 编译时检查 ChanceScheduler 实现了 Scheduler 接口
var _ Scheduler = (*ChanceScheduler)(nil)

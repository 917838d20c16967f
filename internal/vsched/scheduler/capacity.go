package scheduler

import (
	"context"

	"github.com/jimyag/vsched/internal/vsched/repository/model"
	"github.com/jimyag/vsched/pkg/apierror"
	"github.com/rs/zerolog"
)

// hasEnoughResource 检查目标主机是否有足够的剩余容量承载实例
//
// 剩余容量 = 主机声明的总量 - 已经放置在该主机上的所有实例占用之和。
// 三个维度（vcpu/内存/磁盘）都要求剩余量严格大于实例的需求，
// 恰好相等也会被拒绝。
//
// 这是一个时间点快照检查，没有预留或加锁：并发到同一目标的
// 两次迁移可能同时通过检查导致超卖。
func (b *Base) hasEnoughResource(ctx context.Context, instance *model.Instance, destHost *model.Host) error {
	logger := zerolog.Ctx(ctx)

	remainingCPU := destHost.VCPUs
	remainingMem := destHost.MemoryMB
	remainingHDD := destHost.LocalGB

	instances, err := b.instances.ListByHost(ctx, destHost.Name)
	if err != nil {
		return err
	}
	for _, placed := range instances {
		remainingCPU -= placed.VCPUs
		remainingMem -= placed.MemoryMB
		remainingHDD -= placed.LocalGB
	}

	logger.Debug().
		Str("host", destHost.Name).
		Int64("remaining_vcpu", remainingCPU).
		Int64("remaining_memory_mb", remainingMem).
		Int64("remaining_local_gb", remainingHDD).
		Msg("Destination host remaining resources")
	logger.Debug().
		Str("instance", instance.Hostname).
		Int64("vcpus", instance.VCPUs).
		Int64("memory_mb", instance.MemoryMB).
		Int64("local_gb", instance.LocalGB).
		Msg("Instance resource demand")

	if remainingCPU <= instance.VCPUs || remainingMem <= instance.MemoryMB || remainingHDD <= instance.LocalGB {
		return apierror.WrapErrorf(apierror.ErrInsufficientResources, nil,
			"%s doesn't have enough resource for %s", destHost.Name, instance.Hostname)
	}

	logger.Debug().
		Str("host", destHost.Name).
		Str("instance", instance.Hostname).
		Msg("Destination host has enough resource")
	return nil
}

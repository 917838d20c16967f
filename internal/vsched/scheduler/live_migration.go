package scheduler

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/jimyag/vsched/internal/vsched/repository/model"
	"github.com/jimyag/vsched/pkg/apierror"
	"github.com/rs/zerolog"
)

// ScheduleLiveMigration 校验并提交一次热迁移
//
// 校验按固定顺序执行，第一个失败的检查立即中止整个操作，
// 全部通过前不会发生任何状态变更。成功时返回源主机名，
// 调用方需要用它通知源节点开始实际的传输。
func (b *Base) ScheduleLiveMigration(ctx context.Context, instanceID, dest string) (string, error) {
	logger := zerolog.Ctx(ctx)

	// 1. 实例必须存在
	instance, err := b.instances.GetByID(ctx, instanceID)
	if err != nil {
		return "", err
	}

	// 2. 实例必须处于运行状态（粗粒度状态和子状态都要求 running）
	if instance.State != model.PowerStateRunning ||
		instance.StateDescription != model.StateDescriptionRunning {
		return "", apierror.WrapErrorf(apierror.ErrInvalidState, nil,
			"instance %s is not running", instance.Hostname)
	}

	// 3. 目标主机必须存在
	destHost, err := b.hosts.GetByName(ctx, dest)
	if err != nil {
		return "", err
	}

	// 4. 源和目标不能相同
	src := instance.Host
	if dest == src {
		return "", apierror.WrapErrorf(apierror.ErrInvalidDestination, nil,
			"%s is where %s is running now, choose other host", dest, instance.Hostname)
	}

	// 5. 目标必须是 compute 节点
	services, err := b.services.ListByTopic(ctx, TopicCompute)
	if err != nil {
		return "", err
	}
	var destService *model.Service
	for _, service := range services {
		if service.Host == dest {
			destService = service
			break
		}
	}
	if destService == nil {
		return "", apierror.WrapErrorf(apierror.ErrInvalidDestination, nil,
			"%s must be compute node", dest)
	}

	// 6. 目标必须在线
	if !b.ServiceIsUp(destService) {
		return "", apierror.WrapErrorf(apierror.ErrInvalidDestination, nil,
			"%s is not alive (time synchronize problem?)", dest)
	}

	// 以下迁移前检查参考 libvirt 的 pre-migration checks

	// 7. hypervisor 类型必须一致
	origHost, err := b.hosts.GetByName(ctx, instance.LaunchedOn)
	if err != nil {
		return "", err
	}
	if origHost.HypervisorType != destHost.HypervisorType {
		return "", apierror.WrapErrorf(apierror.ErrIncompatibleHypervisor, nil,
			"different hypervisor type (%s -> %s)", origHost.HypervisorType, destHost.HypervisorType)
	}

	// 8. 目标的 hypervisor 版本不能低于源
	if origHost.HypervisorVersion > destHost.HypervisorVersion {
		return "", apierror.WrapErrorf(apierror.ErrIncompatibleHypervisor, nil,
			"older hypervisor version (%d -> %d)", origHost.HypervisorVersion, destHost.HypervisorVersion)
	}

	// 9. 源主机必须有可用的 cpu_info
	if !validCPUInfo(origHost.CPUInfo) {
		return "", apierror.WrapErrorf(apierror.ErrMissingCpuInfo, nil,
			"not found usable cpu_info for %s on hosts registry", instance.LaunchedOn)
	}

	// 远程 compareCPU 探测
	if err := b.compareCPU(ctx, destHost, origHost.CPUInfo); err != nil {
		logger.Error().
			Str("dest", dest).
			Str("src", src).
			Str("instance_id", instance.ID).
			Err(err).
			Msg("Destination doesn't have compatibility to source")
		return "", apierror.WrapErrorf(apierror.ErrRemoteCompatibilityCheckFailed, err,
			"%s doesn't have compatibility to %s (where %s launching at)", dest, src, instance.Hostname)
	}

	// 目标主机容量必须严格富余
	if err := b.hasEnoughResource(ctx, instance, destHost); err != nil {
		return "", err
	}

	// 提交：实例进入 paused/migrating
	if err := b.instances.SetState(ctx, instance.ID, model.PowerStatePaused, model.StateDescriptionMigrating); err != nil {
		return "", err
	}

	// 附加卷逐个标记为 migrating
	// 单个卷已经不存在时视为已卸载，跳过继续处理剩余卷
	volumes, err := b.volumes.ListByInstance(ctx, instance.ID)
	if err != nil {
		return "", err
	}
	for _, vol := range volumes {
		if err := b.volumes.UpdateStatus(ctx, vol.ID, model.VolumeStatusMigrating); err != nil {
			if errors.Is(err, apierror.ErrVolumeNotFound) {
				continue
			}
			return "", err
		}
	}

	logger.Info().
		Str("instance_id", instance.ID).
		Str("src", src).
		Str("dest", dest).
		Msg("Live migration admitted")

	// 返回值用于通知源节点释放实例
	return src, nil
}

// compareCPU 向目标主机发起远程 CPU 兼容性探测
func (b *Base) compareCPU(ctx context.Context, destHost *model.Host, cpuInfo string) error {
	client, err := b.pool.Get(destHost.Name, destHost.URI)
	if err != nil {
		return err
	}

	probeCtx := ctx
	if b.probeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, b.probeTimeout)
		defer cancel()
	}

	result, err := client.CompareCPU(probeCtx, cpuInfo)
	if err != nil {
		// 连接可能已经坏掉，下次访问重新建连
		b.pool.Forget(destHost.Name)
		return err
	}
	if !result.Compatible() {
		return errors.New("compare cpu result: " + result.String())
	}
	return nil
}

// validCPUInfo 校验 cpu_info 是非空且格式正确的 XML 描述
func validCPUInfo(cpuInfo string) bool {
	cpuInfo = strings.TrimSpace(cpuInfo)
	if cpuInfo == "" {
		return false
	}

	decoder := xml.NewDecoder(strings.NewReader(cpuInfo))
	for {
		_, err := decoder.Token()
		if err != nil {
			// io.EOF 表示完整解析结束
			return errors.Is(err, io.EOF)
		}
	}
}

package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jimyag/vsched/internal/vsched/entity"
	"github.com/jimyag/vsched/internal/vsched/repository"
	"github.com/jimyag/vsched/internal/vsched/repository/model"
	"github.com/jimyag/vsched/internal/vsched/scheduler"
	"github.com/jimyag/vsched/pkg/apierror"
	"github.com/jimyag/vsched/pkg/compute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceTestEnv struct {
	serviceRepo  repository.ServiceRepository
	hostRepo     repository.HostRepository
	instanceRepo repository.InstanceRepository
	volumeRepo   repository.VolumeRepository
	mockCompute  *compute.MockClient
	pool         *compute.Pool
	base         *scheduler.Base
}

func setupServiceTestEnv(t *testing.T) *serviceTestEnv {
	t.Helper()

	repo, err := repository.New(filepath.Join(t.TempDir(), "vsched.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	mockCompute := new(compute.MockClient)
	pool := compute.NewPool(func(uri string) (compute.Client, error) {
		return mockCompute, nil
	})

	serviceRepo := repository.NewServiceRepository(repo.DB())
	hostRepo := repository.NewHostRepository(repo.DB())
	instanceRepo := repository.NewInstanceRepository(repo.DB())
	volumeRepo := repository.NewVolumeRepository(repo.DB())

	return &serviceTestEnv{
		serviceRepo:  serviceRepo,
		hostRepo:     hostRepo,
		instanceRepo: instanceRepo,
		volumeRepo:   volumeRepo,
		mockCompute:  mockCompute,
		pool:         pool,
		base: scheduler.NewBase(
			serviceRepo, hostRepo, instanceRepo, volumeRepo,
			pool, 60*time.Second, time.Second,
		),
	}
}

func TestRegistryService_Heartbeat(t *testing.T) {
	t.Parallel()

	env := setupServiceTestEnv(t)
	registry := NewRegistryService(env.serviceRepo, env.hostRepo, env.pool, 60*time.Second)
	ctx := context.Background()

	// 首次上报自动注册并生成 srv- 前缀的 ID
	svc, err := registry.Heartbeat(ctx, &entity.HeartbeatRequest{Topic: "compute", Host: "node-1"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(svc.ID, "srv-"))
	assert.True(t, svc.Up)

	// 再次上报复用已有记录
	again, err := registry.Heartbeat(ctx, &entity.HeartbeatRequest{Topic: "compute", Host: "node-1"})
	require.NoError(t, err)
	assert.Equal(t, svc.ID, again.ID)
}

func TestRegistryService_ListServices(t *testing.T) {
	t.Parallel()

	env := setupServiceTestEnv(t)
	registry := NewRegistryService(env.serviceRepo, env.hostRepo, env.pool, 60*time.Second)
	ctx := context.Background()

	_, err := env.serviceRepo.Heartbeat(ctx, "srv-1", "compute", "node-1", time.Now())
	require.NoError(t, err)
	_, err = env.serviceRepo.Heartbeat(ctx, "srv-2", "compute", "node-2", time.Now().Add(-5*time.Minute))
	require.NoError(t, err)

	resp, err := registry.ListServices(ctx, &entity.ListServicesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Services, 2)

	// node-1 心跳新鲜，node-2 已超时
	assert.True(t, resp.Services[0].Up)
	assert.False(t, resp.Services[1].Up)
}

func TestRegistryService_RegisterHost(t *testing.T) {
	t.Parallel()

	env := setupServiceTestEnv(t)
	registry := NewRegistryService(env.serviceRepo, env.hostRepo, env.pool, 60*time.Second)
	ctx := context.Background()

	host, err := registry.RegisterHost(ctx, &entity.RegisterHostRequest{
		Name:              "node-1",
		URI:               "qemu+tcp://node-1/system",
		VCPUs:             16,
		MemoryMB:          32768,
		LocalGB:           500,
		HypervisorType:    "QEMU",
		HypervisorVersion: 8003000,
	})
	require.NoError(t, err)
	assert.Equal(t, "node-1", host.Name)

	// 重复注册更新能力信息
	updated, err := registry.RegisterHost(ctx, &entity.RegisterHostRequest{
		Name:              "node-1",
		URI:               "qemu+tcp://node-1/system",
		VCPUs:             32,
		MemoryMB:          65536,
		LocalGB:           1000,
		HypervisorType:    "QEMU",
		HypervisorVersion: 9000000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(32), updated.VCPUs)
	assert.Equal(t, uint64(9000000), updated.HypervisorVersion)

	hosts, err := registry.ListHosts(ctx)
	require.NoError(t, err)
	assert.Len(t, hosts.Hosts, 1)
}

func TestRegistryService_DiscoverHost(t *testing.T) {
	t.Parallel()

	t.Run("capabilities collected from the node", func(t *testing.T) {
		t.Parallel()

		env := setupServiceTestEnv(t)
		registry := NewRegistryService(env.serviceRepo, env.hostRepo, env.pool, 60*time.Second)
		ctx := context.Background()

		env.mockCompute.On("HostInfo", mock.Anything).Return(&compute.HostInfo{
			Hostname:          "node-1",
			HypervisorType:    "QEMU",
			HypervisorVersion: 8003000,
			CPUXML:            "<cpu><arch>x86_64</arch></cpu>",
			VCPUs:             16,
			MemoryMB:          32768,
		}, nil)

		host, err := registry.DiscoverHost(ctx, &entity.DiscoverHostRequest{
			Name:    "node-1",
			URI:     "qemu+tcp://node-1/system",
			LocalGB: 500,
		})
		require.NoError(t, err)
		assert.Equal(t, "QEMU", host.HypervisorType)
		assert.Equal(t, uint64(8003000), host.HypervisorVersion)
		assert.Equal(t, int64(16), host.VCPUs)
		assert.Equal(t, int64(500), host.LocalGB)
		assert.Equal(t, "<cpu><arch>x86_64</arch></cpu>", host.CPUInfo)
		env.mockCompute.AssertExpectations(t)
	})

	t.Run("unreachable node", func(t *testing.T) {
		t.Parallel()

		env := setupServiceTestEnv(t)
		registry := NewRegistryService(env.serviceRepo, env.hostRepo, env.pool, 60*time.Second)

		env.mockCompute.On("HostInfo", mock.Anything).
			Return(nil, assert.AnError)
		// 采集失败后连接被丢弃，Close 会被调用
		env.mockCompute.On("Close").Return(nil)

		_, err := registry.DiscoverHost(context.Background(), &entity.DiscoverHostRequest{
			Name: "node-1",
			URI:  "qemu+tcp://node-1/system",
		})
		assert.ErrorIs(t, err, apierror.ErrHostUnreachable)
	})
}

func TestInventoryService_CreateInstance(t *testing.T) {
	t.Parallel()

	env := setupServiceTestEnv(t)
	inventory := NewInventoryService(env.instanceRepo, env.volumeRepo)
	ctx := context.Background()

	instance, err := inventory.CreateInstance(ctx, &entity.CreateInstanceRequest{
		Hostname: "web-1",
		Host:     "node-1",
		VCPUs:    2,
		MemoryMB: 2048,
		LocalGB:  20,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(instance.ID, "i-"))
	assert.Equal(t, model.PowerStateRunning, instance.State)
	assert.Equal(t, "node-1", instance.LaunchedOn)

	got, err := inventory.GetInstance(ctx, &entity.GetInstanceRequest{ID: instance.ID})
	require.NoError(t, err)
	assert.Equal(t, instance.ID, got.ID)

	all, err := inventory.ListInstances(ctx, &entity.ListInstancesRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Instances, 1)

	none, err := inventory.ListInstances(ctx, &entity.ListInstancesRequest{Host: "node-2"})
	require.NoError(t, err)
	assert.Empty(t, none.Instances)
}

func TestInventoryService_CreateVolume(t *testing.T) {
	t.Parallel()

	env := setupServiceTestEnv(t)
	inventory := NewInventoryService(env.instanceRepo, env.volumeRepo)
	ctx := context.Background()

	t.Run("volume requires existing instance", func(t *testing.T) {
		_, err := inventory.CreateVolume(ctx, &entity.CreateVolumeRequest{InstanceID: "i-missing", SizeGB: 40})
		assert.ErrorIs(t, err, apierror.ErrInstanceNotFound)
	})

	t.Run("volume attached to instance", func(t *testing.T) {
		instance, err := inventory.CreateInstance(ctx, &entity.CreateInstanceRequest{
			Hostname: "web-1",
			Host:     "node-1",
		})
		require.NoError(t, err)

		volume, err := inventory.CreateVolume(ctx, &entity.CreateVolumeRequest{InstanceID: instance.ID, SizeGB: 40})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(volume.ID, "vol-"))
		assert.Equal(t, model.VolumeStatusInUse, volume.Status)

		volumes, err := inventory.ListVolumes(ctx, &entity.ListVolumesRequest{InstanceID: instance.ID})
		require.NoError(t, err)
		assert.Len(t, volumes.Volumes, 1)
	})
}

func TestSchedulerService_Schedule(t *testing.T) {
	t.Parallel()

	env := setupServiceTestEnv(t)
	schedulerService := NewSchedulerService(scheduler.NewSimpleScheduler(env.base), env.base)
	ctx := context.Background()

	_, err := env.serviceRepo.Heartbeat(ctx, "srv-1", "compute", "node-1", time.Now())
	require.NoError(t, err)
	require.NoError(t, env.hostRepo.Upsert(ctx, &model.Host{
		Name: "node-1", URI: "qemu+tcp://node-1/system",
		VCPUs: 16, MemoryMB: 32768, LocalGB: 500,
	}))

	// 默认 topic 是 compute
	resp, err := schedulerService.Schedule(ctx, &entity.ScheduleRequest{VCPUs: 2, MemoryMB: 2048})
	require.NoError(t, err)
	assert.Equal(t, "node-1", resp.Host)

	// 没有任何服务的 topic 调度失败
	_, err = schedulerService.Schedule(ctx, &entity.ScheduleRequest{Topic: "volume"})
	assert.ErrorIs(t, err, apierror.ErrNoValidHost)
}

func TestSchedulerService_UpHosts(t *testing.T) {
	t.Parallel()

	env := setupServiceTestEnv(t)
	schedulerService := NewSchedulerService(scheduler.NewSimpleScheduler(env.base), env.base)
	ctx := context.Background()

	_, err := env.serviceRepo.Heartbeat(ctx, "srv-1", "compute", "node-1", time.Now())
	require.NoError(t, err)
	_, err = env.serviceRepo.Heartbeat(ctx, "srv-2", "compute", "node-2", time.Now().Add(-5*time.Minute))
	require.NoError(t, err)

	resp, err := schedulerService.UpHosts(ctx, &entity.UpHostsRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"node-1"}, resp.Hosts)
}

func TestSchedulerService_LiveMigrate(t *testing.T) {
	t.Parallel()

	env := setupServiceTestEnv(t)
	schedulerService := NewSchedulerService(scheduler.NewSimpleScheduler(env.base), env.base)
	ctx := context.Background()

	cpuInfo := "<cpu><arch>x86_64</arch></cpu>"
	_, err := env.serviceRepo.Heartbeat(ctx, "srv-1", "compute", "node-1", time.Now())
	require.NoError(t, err)
	_, err = env.serviceRepo.Heartbeat(ctx, "srv-2", "compute", "node-2", time.Now())
	require.NoError(t, err)
	for _, name := range []string{"node-1", "node-2"} {
		require.NoError(t, env.hostRepo.Upsert(ctx, &model.Host{
			Name: name, URI: "qemu+tcp://" + name + "/system",
			VCPUs: 16, MemoryMB: 32768, LocalGB: 500,
			HypervisorType: "QEMU", HypervisorVersion: 8003000, CPUInfo: cpuInfo,
		}))
	}
	require.NoError(t, env.instanceRepo.Create(ctx, &model.Instance{
		ID: "i-1", Hostname: "web-1", Host: "node-1", LaunchedOn: "node-1",
		VCPUs: 2, MemoryMB: 2048, LocalGB: 20,
		State: model.PowerStateRunning, StateDescription: model.StateDescriptionRunning,
	}))

	env.mockCompute.On("CompareCPU", mock.Anything, cpuInfo).
		Return(compute.CompareIdentical, nil)

	resp, err := schedulerService.LiveMigrate(ctx, &entity.LiveMigrationRequest{InstanceID: "i-1", Dest: "node-2"})
	require.NoError(t, err)
	assert.Equal(t, "node-1", resp.SourceHost)
}

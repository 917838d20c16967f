package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jimyag/vsched/internal/vsched/repository/model"
	"github.com/jimyag/vsched/pkg/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	require.NoError(t, err)

	// 使用 t.Cleanup 确保在测试真正结束时清理，支持并发测试
	t.Cleanup(func() {
		_ = repo.Close()
		_ = os.RemoveAll(tmpDir)
	})

	return repo
}

func TestServiceRepository(t *testing.T) {
	t.Parallel()

	repo := setupTestDB(t)
	serviceRepo := NewServiceRepository(repo.DB())
	ctx := context.Background()

	now := time.Now()

	t.Run("Heartbeat creates then touches", func(t *testing.T) {
		svc, err := serviceRepo.Heartbeat(ctx, "srv-1", "compute", "node-1", now)
		require.NoError(t, err)
		assert.Equal(t, "node-1", svc.Host)

		later := now.Add(30 * time.Second)
		svc, err = serviceRepo.Heartbeat(ctx, "srv-ignored", "compute", "node-1", later)
		require.NoError(t, err)
		// 已存在的服务只更新心跳时间，不改 ID
		assert.Equal(t, "srv-1", svc.ID)
		assert.WithinDuration(t, later, svc.UpdatedAt, time.Second)
	})

	t.Run("ListByTopic preserves registration order", func(t *testing.T) {
		_, err := serviceRepo.Heartbeat(ctx, "srv-2", "compute", "node-2", now.Add(time.Second))
		require.NoError(t, err)
		_, err = serviceRepo.Heartbeat(ctx, "srv-3", "compute", "node-3", now.Add(2*time.Second))
		require.NoError(t, err)
		_, err = serviceRepo.Heartbeat(ctx, "srv-4", "volume", "node-2", now)
		require.NoError(t, err)

		services, err := serviceRepo.ListByTopic(ctx, "compute")
		require.NoError(t, err)

		hosts := make([]string, 0, len(services))
		for _, svc := range services {
			hosts = append(hosts, svc.Host)
		}
		assert.Equal(t, []string{"node-1", "node-2", "node-3"}, hosts)
	})

	t.Run("GetByTopicAndHost not found", func(t *testing.T) {
		_, err := serviceRepo.GetByTopicAndHost(ctx, "compute", "node-missing")
		assert.True(t, errors.Is(err, apierror.ErrHostNotFound))
	})
}

func TestHostRepository(t *testing.T) {
	t.Parallel()

	repo := setupTestDB(t)
	hostRepo := NewHostRepository(repo.DB())
	ctx := context.Background()

	t.Run("Upsert and GetByName", func(t *testing.T) {
		host := &model.Host{
			Name:              "node-1",
			URI:               "qemu+tcp://node-1/system",
			VCPUs:             32,
			MemoryMB:          65536,
			LocalGB:           1024,
			HypervisorType:    "QEMU",
			HypervisorVersion: 8003000,
			CPUInfo:           "<cpu><arch>x86_64</arch></cpu>",
			CreatedAt:         time.Now(),
			UpdatedAt:         time.Now(),
		}
		require.NoError(t, hostRepo.Upsert(ctx, host))

		got, err := hostRepo.GetByName(ctx, "node-1")
		require.NoError(t, err)
		assert.Equal(t, int64(32), got.VCPUs)
		assert.Equal(t, uint64(8003000), got.HypervisorVersion)

		// 节点重新注册时覆盖旧记录
		host.VCPUs = 64
		require.NoError(t, hostRepo.Upsert(ctx, host))
		got, err = hostRepo.GetByName(ctx, "node-1")
		require.NoError(t, err)
		assert.Equal(t, int64(64), got.VCPUs)
	})

	t.Run("GetByName not found", func(t *testing.T) {
		_, err := hostRepo.GetByName(ctx, "node-missing")
		assert.True(t, errors.Is(err, apierror.ErrHostNotFound))
	})
}

func TestInstanceRepository(t *testing.T) {
	t.Parallel()

	repo := setupTestDB(t)
	instanceRepo := NewInstanceRepository(repo.DB())
	ctx := context.Background()

	inst := &model.Instance{
		ID:               "i-100",
		Hostname:         "web-1",
		Host:             "node-1",
		LaunchedOn:       "node-1",
		VCPUs:            2,
		MemoryMB:         2048,
		LocalGB:          20,
		State:            model.PowerStateRunning,
		StateDescription: model.StateDescriptionRunning,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	require.NoError(t, instanceRepo.Create(ctx, inst))

	t.Run("GetByID", func(t *testing.T) {
		got, err := instanceRepo.GetByID(ctx, "i-100")
		require.NoError(t, err)
		assert.Equal(t, "web-1", got.Hostname)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		_, err := instanceRepo.GetByID(ctx, "i-missing")
		assert.True(t, errors.Is(err, apierror.ErrInstanceNotFound))
	})

	t.Run("ListByHost", func(t *testing.T) {
		other := &model.Instance{
			ID: "i-101", Hostname: "web-2", Host: "node-2", LaunchedOn: "node-2",
			VCPUs: 1, MemoryMB: 1024, LocalGB: 10,
			State: model.PowerStateRunning, StateDescription: model.StateDescriptionRunning,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}
		require.NoError(t, instanceRepo.Create(ctx, other))

		instances, err := instanceRepo.ListByHost(ctx, "node-1")
		require.NoError(t, err)
		require.Len(t, instances, 1)
		assert.Equal(t, "i-100", instances[0].ID)
	})

	t.Run("SetState", func(t *testing.T) {
		err := instanceRepo.SetState(ctx, "i-100", model.PowerStatePaused, model.StateDescriptionMigrating)
		require.NoError(t, err)

		got, err := instanceRepo.GetByID(ctx, "i-100")
		require.NoError(t, err)
		assert.Equal(t, model.PowerStatePaused, got.State)
		assert.Equal(t, model.StateDescriptionMigrating, got.StateDescription)
	})

	t.Run("SetState not found", func(t *testing.T) {
		err := instanceRepo.SetState(ctx, "i-missing", model.PowerStatePaused, model.StateDescriptionMigrating)
		assert.True(t, errors.Is(err, apierror.ErrInstanceNotFound))
	})
}

func TestVolumeRepository(t *testing.T) {
	t.Parallel()

	repo := setupTestDB(t)
	volumeRepo := NewVolumeRepository(repo.DB())
	ctx := context.Background()

	vols := []*model.Volume{
		{ID: "vol-1", InstanceID: "i-100", SizeGB: 20, Status: model.VolumeStatusInUse, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: "vol-2", InstanceID: "i-100", SizeGB: 40, Status: model.VolumeStatusInUse, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: "vol-3", InstanceID: "i-200", SizeGB: 10, Status: model.VolumeStatusInUse, CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}
	for _, vol := range vols {
		require.NoError(t, volumeRepo.Create(ctx, vol))
	}

	t.Run("ListByInstance", func(t *testing.T) {
		volumes, err := volumeRepo.ListByInstance(ctx, "i-100")
		require.NoError(t, err)
		assert.Len(t, volumes, 2)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		require.NoError(t, volumeRepo.UpdateStatus(ctx, "vol-1", model.VolumeStatusMigrating))

		got, err := volumeRepo.GetByID(ctx, "vol-1")
		require.NoError(t, err)
		assert.Equal(t, model.VolumeStatusMigrating, got.Status)
	})

	t.Run("UpdateStatus not found", func(t *testing.T) {
		err := volumeRepo.UpdateStatus(ctx, "vol-missing", model.VolumeStatusMigrating)
		assert.True(t, errors.Is(err, apierror.ErrVolumeNotFound))
	})
}

package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jimyag/vsched/internal/vsched/repository"
	"github.com/jimyag/vsched/internal/vsched/repository/model"
	"github.com/jimyag/vsched/pkg/compute"
	"github.com/stretchr/testify/require"
)

// testEnv 包含测试所需的所有依赖
// 注册表使用真实的 SQLite 数据库，远程探测使用 mock
type testEnv struct {
	Repo        *repository.Repository
	Services    repository.ServiceRepository
	Hosts       repository.HostRepository
	Instances   repository.InstanceRepository
	Volumes     repository.VolumeRepository
	MockCompute *compute.MockClient
	Base        *Base
}

// setupTestEnv 为每个测试用例创建独立的测试环境
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := repository.New(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = repo.Close()
		_ = os.RemoveAll(tmpDir)
	})

	env := &testEnv{
		Repo:        repo,
		Services:    repository.NewServiceRepository(repo.DB()),
		Hosts:       repository.NewHostRepository(repo.DB()),
		Instances:   repository.NewInstanceRepository(repo.DB()),
		Volumes:     repository.NewVolumeRepository(repo.DB()),
		MockCompute: compute.NewMockClient(),
	}

	// 所有主机的连接都指向同一个 mock 客户端
	pool := compute.NewPool(func(uri string) (compute.Client, error) {
		return env.MockCompute, nil
	})

	env.Base = NewBase(
		env.Services, env.Hosts, env.Instances, env.Volumes,
		pool, 60*time.Second, time.Second,
	)
	return env
}

// addService 注册一个服务并把心跳时间设置为 heartbeatAge 之前
func (e *testEnv) addService(t *testing.T, id, topic, host string, heartbeatAge time.Duration) {
	t.Helper()
	now := time.Now().Add(-heartbeatAge)
	_, err := e.Services.Heartbeat(context.Background(), id, topic, host, now)
	require.NoError(t, err)
}

// addHost 注册一台主机
func (e *testEnv) addHost(t *testing.T, host *model.Host) {
	t.Helper()
	if host.URI == "" {
		host.URI = "qemu+tcp://" + host.Name + "/system"
	}
	if host.CreatedAt.IsZero() {
		host.CreatedAt = time.Now()
	}
	host.UpdatedAt = time.Now()
	require.NoError(t, e.Hosts.Upsert(context.Background(), host))
}

// addInstance 创建一个实例记录
func (e *testEnv) addInstance(t *testing.T, instance *model.Instance) {
	t.Helper()
	if instance.CreatedAt.IsZero() {
		instance.CreatedAt = time.Now()
	}
	instance.UpdatedAt = time.Now()
	require.NoError(t, e.Instances.Create(context.Background(), instance))
}

// addVolume 创建一个卷记录
func (e *testEnv) addVolume(t *testing.T, volume *model.Volume) {
	t.Helper()
	if volume.CreatedAt.IsZero() {
		volume.CreatedAt = time.Now()
	}
	volume.UpdatedAt = time.Now()
	require.NoError(t, e.Volumes.Create(context.Background(), volume))
}

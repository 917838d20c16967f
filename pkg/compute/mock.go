package compute

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient 是 Client 的 mock 实现
// 用于测试，不需要真实的 libvirt 连接
type MockClient struct {
	mock.Mock
}

// NewMockClient 创建 mock 客户端
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) CompareCPU(ctx context.Context, cpuXML string) (CompareResult, error) {
	args := m.Called(ctx, cpuXML)
	return args.Get(0).(CompareResult), args.Error(1)
}

func (m *MockClient) HostInfo(ctx context.Context) (*HostInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*HostInfo), args.Error(1)
}

func (m *MockClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// 编译时检查 MockClient 实现了 Client 接口
var _ Client = (*MockClient)(nil)

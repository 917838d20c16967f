package compute

import (
	"context"
	"fmt"
	"net/url"

	"github.com/digitalocean/go-libvirt"
)

// libvirtClient 基于 libvirt 连接的 Client 实现
type libvirtClient struct {
	conn *libvirt.Libvirt
}

// Dial 连接指定 URI 的计算节点
// 支持的 URI 格式：
// - qemu:///system (本地系统连接)
// - qemu+ssh://user@host/system (SSH 远程连接)
// - qemu+tcp://host/system (TCP 远程连接)
func Dial(uri string) (Client, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse libvirt uri %q: %w", uri, err)
	}
	conn, err := libvirt.ConnectToURI(u)
	if err != nil {
		return nil, fmt.Errorf("connect to %q: %w", uri, err)
	}
	return &libvirtClient{conn: conn}, nil
}

// call 在独立 goroutine 中执行 libvirt 调用，让调用方的 ctx 超时/取消能够生效
// libvirt 的调用本身不接受 context
func call[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v: v, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.v, r.err
	}
}

// CompareCPU 调用 libvirt 的 ConnectCompareCPU 比较 CPU 兼容性
func (c *libvirtClient) CompareCPU(ctx context.Context, cpuXML string) (CompareResult, error) {
	ret, err := call(ctx, func() (int32, error) {
		return c.conn.ConnectCompareCPU(cpuXML, 0)
	})
	if err != nil {
		return CompareError, fmt.Errorf("compare cpu: %w", err)
	}
	return CompareResult(ret), nil
}

// HostInfo 采集节点的主机信息
func (c *libvirtClient) HostInfo(ctx context.Context) (*HostInfo, error) {
	return call(ctx, func() (*HostInfo, error) {
		hostname, err := c.conn.ConnectGetHostname()
		if err != nil {
			return nil, fmt.Errorf("get hostname: %w", err)
		}

		hvType, err := c.conn.ConnectGetType()
		if err != nil {
			return nil, fmt.Errorf("get hypervisor type: %w", err)
		}

		hvVersion, err := c.conn.ConnectGetVersion()
		if err != nil {
			return nil, fmt.Errorf("get hypervisor version: %w", err)
		}

		capsXML, err := c.conn.ConnectGetCapabilities()
		if err != nil {
			return nil, fmt.Errorf("get capabilities: %w", err)
		}
		caps, err := ParseCapabilities(capsXML)
		if err != nil {
			return nil, fmt.Errorf("parse capabilities: %w", err)
		}

		// NodeGetInfo 返回的内存单位是 KB
		_, memoryKB, cpus, _, _, _, _, _, err := c.conn.NodeGetInfo()
		if err != nil {
			return nil, fmt.Errorf("get node info: %w", err)
		}

		return &HostInfo{
			Hostname:          hostname,
			HypervisorType:    hvType,
			HypervisorVersion: hvVersion,
			CPUXML:            caps.HostCPUXML(),
			VCPUs:             cpus,
			MemoryMB:          memoryKB / 1024,
		}, nil
	})
}

// Close 断开 libvirt 连接
func (c *libvirtClient) Close() error {
	return c.conn.Disconnect()
}

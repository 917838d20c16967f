// Package compute 提供到计算节点的远程探测客户端
//
// 调度器通过该客户端向目标主机的 libvirt 发起 compareCPU 探测，
// 判断源主机的 CPU 描述在目标主机上是否可以运行。
package compute

import "context"

// CompareResult CPU 兼容性比较结果
// 取值与 libvirt virCPUCompareResult 一致
type CompareResult int32

const (
	CompareError        CompareResult = -1 // 比较过程出错
	CompareIncompatible CompareResult = 0  // 不兼容
	CompareIdentical    CompareResult = 1  // 完全一致
	CompareSuperset     CompareResult = 2  // 目标是源的超集
)

// Compatible 判断结果是否表示兼容
func (r CompareResult) Compatible() bool {
	return r == CompareIdentical || r == CompareSuperset
}

// String 返回可读的结果描述
func (r CompareResult) String() string {
	switch r {
	case CompareIncompatible:
		return "incompatible"
	case CompareIdentical:
		return "identical"
	case CompareSuperset:
		return "superset"
	default:
		return "error"
	}
}

// HostInfo 计算节点自报的主机信息
// 主机注册时由节点的 libvirt 连接采集
type HostInfo struct {
	Hostname          string `json:"hostname"`           // 主机名
	HypervisorType    string `json:"hypervisor_type"`    // hypervisor 类型，如 QEMU
	HypervisorVersion uint64 `json:"hypervisor_version"` // 版本号，major*1000000 + minor*1000 + micro
	CPUXML            string `json:"cpu_xml"`            // 主机 CPU 的 XML 描述
	VCPUs             int32  `json:"vcpus"`              // 逻辑 CPU 数量
	MemoryMB          uint64 `json:"memory_mb"`          // 内存大小（MB）
}

// Client 计算节点客户端接口
type Client interface {
	// CompareCPU 把源主机的 CPU XML 描述发给该节点比较兼容性
	CompareCPU(ctx context.Context, cpuXML string) (CompareResult, error)
	// HostInfo 采集该节点的主机信息
	HostInfo(ctx context.Context) (*HostInfo, error)
	// Close 断开连接
	Close() error
}

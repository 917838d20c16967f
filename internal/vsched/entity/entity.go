// Package entity 定义 API 层使用的实体
package entity

// Service 服务注册信息
type Service struct {
	ID        string `json:"id"`
	Host      string `json:"host"`
	Topic     string `json:"topic"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"` // 最近心跳时间
	Up        bool   `json:"up"`         // 按当前时间计算的在线状态
}

// Host 主机信息
type Host struct {
	Name              string `json:"name"`
	URI               string `json:"uri"`
	VCPUs             int64  `json:"vcpus"`
	MemoryMB          int64  `json:"memory_mb"`
	LocalGB           int64  `json:"local_gb"`
	HypervisorType    string `json:"hypervisor_type"`
	HypervisorVersion uint64 `json:"hypervisor_version"`
	CPUInfo           string `json:"cpu_info,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// Instance 实例信息
type Instance struct {
	ID               string `json:"id"`
	Hostname         string `json:"hostname"`
	Host             string `json:"host"`
	LaunchedOn       string `json:"launched_on"`
	VCPUs            int64  `json:"vcpus"`
	MemoryMB         int64  `json:"memory_mb"`
	LocalGB          int64  `json:"local_gb"`
	State            string `json:"state"`
	StateDescription string `json:"state_description"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// Volume 卷信息
type Volume struct {
	ID         string `json:"id"`
	InstanceID string `json:"instance_id"`
	SizeGB     int64  `json:"size_gb"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

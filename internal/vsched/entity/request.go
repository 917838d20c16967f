package entity

import "errors"

// ScheduleRequest 调度请求
type ScheduleRequest struct {
	Topic            string `json:"topic"`                       // 服务 topic（可选，默认 compute）
	AvailabilityHost string `json:"availability_host,omitempty"` // 指定主机（可选）
	VCPUs            int64  `json:"vcpus,omitempty"`             // 需要的 CPU 数量（可选）
	MemoryMB         int64  `json:"memory_mb,omitempty"`         // 需要的内存（MB，可选）
	LocalGB          int64  `json:"local_gb,omitempty"`          // 需要的本地磁盘（GB，可选）
}

// ScheduleResponse 调度结果
type ScheduleResponse struct {
	Host string `json:"host"` // 选中的主机
}

// LiveMigrationRequest 热迁移请求
type LiveMigrationRequest struct {
	InstanceID string `json:"instance_id"` // 要迁移的实例
	Dest       string `json:"dest"`        // 目标主机
}

// IsValid 校验热迁移请求参数
func (r *LiveMigrationRequest) IsValid() error {
	if r.InstanceID == "" {
		return errors.New("instance_id is required")
	}
	if r.Dest == "" {
		return errors.New("dest is required")
	}
	return nil
}

// LiveMigrationResponse 热迁移结果
type LiveMigrationResponse struct {
	SourceHost string `json:"source_host"` // 源主机，调用方通知它开始传输
}

// UpHostsRequest 查询在线主机请求
type UpHostsRequest struct {
	Topic string `json:"topic" form:"topic"` // 服务 topic（可选，默认 compute）
}

// UpHostsResponse 在线主机列表
type UpHostsResponse struct {
	Hosts []string `json:"hosts"`
}

// HeartbeatRequest 服务心跳上报
type HeartbeatRequest struct {
	ID    string `json:"id"`    // 服务 ID（可选，首次上报时由服务端生成）
	Topic string `json:"topic"` // 服务 topic
	Host  string `json:"host"`  // 服务所在主机
}

// IsValid 校验心跳参数
func (r *HeartbeatRequest) IsValid() error {
	if r.Topic == "" {
		return errors.New("topic is required")
	}
	if r.Host == "" {
		return errors.New("host is required")
	}
	return nil
}

// ListServicesRequest 查询服务请求
type ListServicesRequest struct {
	Topic string `json:"topic" form:"topic"` // 服务 topic（可选，默认 compute）
}

// ListServicesResponse 服务列表
type ListServicesResponse struct {
	Services []*Service `json:"services"`
}

// RegisterHostRequest 注册或更新主机请求
type RegisterHostRequest struct {
	Name              string `json:"name"`
	URI               string `json:"uri"`
	VCPUs             int64  `json:"vcpus"`
	MemoryMB          int64  `json:"memory_mb"`
	LocalGB           int64  `json:"local_gb"`
	HypervisorType    string `json:"hypervisor_type"`
	HypervisorVersion uint64 `json:"hypervisor_version"`
	CPUInfo           string `json:"cpu_info"`
}

// IsValid 校验主机注册参数
func (r *RegisterHostRequest) IsValid() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// DiscoverHostRequest 主机自动发现请求
// 连接节点的 libvirt 采集能力信息后注册
type DiscoverHostRequest struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
	// LocalGB 本地磁盘容量（GB），libvirt 不上报磁盘，由调用方提供
	LocalGB int64 `json:"local_gb"`
}

// IsValid 校验主机发现参数
func (r *DiscoverHostRequest) IsValid() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.URI == "" {
		return errors.New("uri is required")
	}
	return nil
}

// ListHostsResponse 主机列表
type ListHostsResponse struct {
	Hosts []*Host `json:"hosts"`
}

// CreateInstanceRequest 登记实例请求
type CreateInstanceRequest struct {
	ID       string `json:"id"` // 可选，缺省时由服务端生成
	Hostname string `json:"hostname"`
	Host     string `json:"host"` // 实例当前所在主机
	VCPUs    int64  `json:"vcpus"`
	MemoryMB int64  `json:"memory_mb"`
	LocalGB  int64  `json:"local_gb"`
}

// IsValid 校验实例登记参数
func (r *CreateInstanceRequest) IsValid() error {
	if r.Hostname == "" {
		return errors.New("hostname is required")
	}
	if r.Host == "" {
		return errors.New("host is required")
	}
	return nil
}

// GetInstanceRequest 查询单个实例
type GetInstanceRequest struct {
	ID string `json:"id" uri:"id" form:"id"`
}

// ListInstancesRequest 查询实例请求
type ListInstancesRequest struct {
	Host string `json:"host" form:"host"` // 按主机过滤（可选）
}

// ListInstancesResponse 实例列表
type ListInstancesResponse struct {
	Instances []*Instance `json:"instances"`
}

// CreateVolumeRequest 登记卷请求
type CreateVolumeRequest struct {
	ID         string `json:"id"` // 可选，缺省时由服务端生成
	InstanceID string `json:"instance_id"`
	SizeGB     int64  `json:"size_gb"`
}

// IsValid 校验卷登记参数
func (r *CreateVolumeRequest) IsValid() error {
	if r.InstanceID == "" {
		return errors.New("instance_id is required")
	}
	return nil
}

// ListVolumesRequest 查询卷请求
type ListVolumesRequest struct {
	InstanceID string `json:"instance_id" uri:"id" form:"instance_id"`
}

// ListVolumesResponse 卷列表
type ListVolumesResponse struct {
	Volumes []*Volume `json:"volumes"`
}

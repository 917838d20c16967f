package apierror

import "net/http"

// 调度器错误目录
// 所有调度相关的错误都在这里定义，服务层通过 WrapError 附加上下文
var (
	// ErrNotImplemented 基础调度器没有实现 schedule 方法
	// 每个可部署的调度策略都必须自己实现 schedule
	ErrNotImplemented = &Error{
		Code:       "NotImplemented",
		Message:    "Must implement a fallback schedule.",
		HTTPStatus: http.StatusNotImplemented,
	}

	// ErrNoValidHost 没有满足调度条件的主机
	ErrNoValidHost = &Error{
		Code:       "NoValidHost",
		Message:    "There is no valid host for the request.",
		HTTPStatus: http.StatusConflict,
	}

	// ErrWillNotSchedule 指定的主机不存在或者不在线
	ErrWillNotSchedule = &Error{
		Code:       "WillNotSchedule",
		Message:    "The specified host is not up or doesn't exist.",
		HTTPStatus: http.StatusConflict,
	}

	// ErrInstanceNotFound 实例不存在
	ErrInstanceNotFound = &Error{
		Code:       "InstanceNotFound",
		Message:    "The specified instance does not exist.",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrHostNotFound 主机不存在
	ErrHostNotFound = &Error{
		Code:       "HostNotFound",
		Message:    "The specified host does not exist.",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrVolumeNotFound 卷不存在
	// 迁移提交阶段遇到该错误时视为卷已经被卸载，继续处理剩余卷
	ErrVolumeNotFound = &Error{
		Code:       "VolumeNotFound",
		Message:    "The specified volume does not exist.",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrInvalidState 实例不处于可迁移的运行状态
	ErrInvalidState = &Error{
		Code:       "InvalidState",
		Message:    "The instance is not in a migratable state.",
		HTTPStatus: http.StatusConflict,
	}

	// ErrInvalidDestination 目标主机不可用
	// 包括：源和目标相同、目标不是 compute 节点、目标不在线
	ErrInvalidDestination = &Error{
		Code:       "InvalidDestination",
		Message:    "The destination host is not usable for this migration.",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrIncompatibleHypervisor hypervisor 类型不同或目标版本低于源版本
	ErrIncompatibleHypervisor = &Error{
		Code:       "IncompatibleHypervisor",
		Message:    "The destination hypervisor is not compatible with the origin.",
		HTTPStatus: http.StatusConflict,
	}

	// ErrMissingCpuInfo 源主机缺少可用的 cpu_info 描述
	ErrMissingCpuInfo = &Error{
		Code:       "MissingCpuInfo",
		Message:    "The origin host has no usable cpu_info record.",
		HTTPStatus: http.StatusInternalServerError,
	}

	// ErrRemoteCompatibilityCheckFailed 远程 compare-cpu 调用失败或者结果不兼容
	ErrRemoteCompatibilityCheckFailed = &Error{
		Code:       "RemoteCompatibilityCheckFailed",
		Message:    "The remote CPU compatibility check failed.",
		HTTPStatus: http.StatusConflict,
	}

	// ErrInsufficientResources 目标主机在至少一个资源维度上没有严格的余量
	ErrInsufficientResources = &Error{
		Code:       "InsufficientResources",
		Message:    "The destination host does not have enough resources.",
		HTTPStatus: http.StatusConflict,
	}

	// ErrRegistryUnavailable 注册表读取失败
	ErrRegistryUnavailable = &Error{
		Code:       "RegistryUnavailable",
		Message:    "A registry read has failed.",
		HTTPStatus: http.StatusServiceUnavailable,
	}

	// ErrHostUnreachable 连接计算节点的 libvirt 失败
	ErrHostUnreachable = &Error{
		Code:       "HostUnreachable",
		Message:    "The compute node cannot be reached.",
		HTTPStatus: http.StatusBadGateway,
	}
)

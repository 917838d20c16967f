// Package apierror 提供带错误码的错误类型，用于所有服务的统一错误处理
//
// 错误响应为 JSON 格式：
//
//	{
//	    "errors": [
//	        {
//	            "code": "InstanceNotFound",
//	            "message": "The specified instance does not exist."
//	        }
//	    ],
//	    "requestID": "ea966190-f9aa-478e-9ede-example"
//	}
//
// 使用示例：
//
//	// 包装预定义的错误并附加上下文
//	err := apierror.WrapErrorf(apierror.ErrHostNotFound, rawErr, "host %s not found", name)
//
//	// 判断错误类型
//	if errors.Is(err, apierror.ErrHostNotFound) {
//	    // ...
//	}
package apierror

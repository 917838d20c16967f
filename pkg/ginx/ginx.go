// Package ginx 提供 gin 框架的 handler 适配器，支持自动参数绑定和响应处理
//
// 支持的 handler 函数签名：
//
//	// 1. 有参数，有返回值，有 error
//	func(c *gin.Context, args *Args) (resp, error)
//
//	// 2. 无参数，有返回值，有 error
//	func(c *gin.Context) (resp, error)
//
// 参数绑定优先级：JSON Body > URI 参数 > Query 参数。
// 如果 args 实现了 IsValid() error，绑定后会自动验证。
// 错误响应为 JSON 格式，*apierror.Error 的 HTTPStatus 决定状态码。
package ginx

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/vsched/pkg/apierror"
)

// bindArgs 绑定请求参数到 args 结构体
// 优先级：JSON Body > URI 参数 > Query 参数
func bindArgs(ctx *gin.Context, args interface{}) error {
	// 1. 尝试从 JSON body 绑定
	// 直接尝试绑定，不依赖 ContentLength（因为 ContentLength 可能不准确）
	if err := ctx.ShouldBindJSON(args); err == nil {
		// JSON 绑定成功，同时尝试绑定 URI 和 Query 参数
		_ = ctx.ShouldBindUri(args)
		_ = ctx.ShouldBindQuery(args)
		return nil
	}

	// 2. 尝试从 URI 参数绑定
	if err := ctx.ShouldBindUri(args); err == nil {
		_ = ctx.ShouldBindQuery(args)
		return nil
	}

	// 3. 尝试从 Query 参数绑定
	return ctx.ShouldBindQuery(args)
}

// renderResponse 渲染 JSON 响应
func renderResponse(ctx *gin.Context, response any) {
	if response == nil {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// RenderError 渲染错误响应
// 如果 err 是 *apierror.Error，使用错误对象中定义的 HTTP 状态码
func RenderError(ctx *gin.Context, statusCode int, err error) {
	if apiErr, ok := err.(*apierror.Error); ok {
		if apiErr.HTTPStatus > 0 {
			statusCode = apiErr.HTTPStatus
		}
		ctx.JSON(statusCode, apierror.NewErrorResponse(requestID(ctx), apiErr))
		return
	}

	ctx.JSON(statusCode, gin.H{"error": err.Error()})
}

// requestID 从请求头获取 request id，没有则为空
func requestID(ctx *gin.Context) string {
	return ctx.GetHeader("X-Request-ID")
}

// Adapt 适配无参数、有返回值和 error 的 handler
func Adapt[TResp any](fn func(*gin.Context) (TResp, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, err := fn(ctx)
		if err != nil {
			RenderError(ctx, http.StatusInternalServerError, err)
			return
		}
		renderResponse(ctx, result)
	}
}

// AdaptArgs 适配有参数、有返回值和 error 的 handler
func AdaptArgs[TArgs any, TResp any](fn func(*gin.Context, *TArgs) (TResp, error)) gin.HandlerFunc {
	var argsType TArgs
	argsTypeValue := reflect.TypeOf(argsType)

	return func(ctx *gin.Context) {
		// 绑定参数
		argsValue := reflect.New(argsTypeValue)
		args := argsValue.Interface()

		if err := bindArgs(ctx, args); err != nil {
			RenderError(ctx, http.StatusBadRequest, err)
			return
		}

		// 验证参数（如果实现了 IsValid 方法）
		if validator, ok := args.(interface{ IsValid() error }); ok {
			if err := validator.IsValid(); err != nil {
				RenderError(ctx, http.StatusBadRequest, err)
				return
			}
		}

		// 调用 handler
		result, err := fn(ctx, args.(*TArgs))
		if err != nil {
			RenderError(ctx, http.StatusInternalServerError, err)
			return
		}

		renderResponse(ctx, result)
	}
}

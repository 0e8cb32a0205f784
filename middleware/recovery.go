package middleware

import (
	"log"
	"runtime/debug"

	"project-analysis/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Recovery 自定义恢复中间件
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		stack := string(debug.Stack())
		log.Printf("[PANIC RECOVERY] panic recovered: %v\n%s", recovered, stack)

		// 开发环境返回详细错误信息，生产环境只返回通用错误
		if gin.Mode() == gin.DebugMode {
			response.ErrorWithData(c, response.INTERNAL_ERROR, gin.H{
				"panic": recovered,
				"stack": stack,
			}, "服务器内部错误")
		} else {
			response.Error(c, response.INTERNAL_ERROR, "服务器内部错误")
		}
	})
}

// ErrorHandler 统一错误处理中间件
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			log.Printf("[ERROR] %s %s - %v", c.Request.Method, c.Request.URL.Path, err.Err)

			if !c.Writer.Written() {
				switch err.Type {
				case gin.ErrorTypeBind:
					response.Error(c, response.INVALID_PARAMS, "请求参数错误: "+err.Error())
				case gin.ErrorTypePublic:
					response.Error(c, response.ERROR, err.Error())
				default:
					response.Error(c, response.INTERNAL_ERROR, "内部服务错误")
				}
			}
		}
	}
}

// RequestID 为每个请求生成唯一ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}

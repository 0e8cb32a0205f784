package middleware

import (
	"errors"
	"strings"

	"project-analysis/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidationMiddleware 是一个中间件，用于绑定和验证请求数据
func ValidationMiddleware(obj interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 绑定请求数据并进行验证
		if err := c.ShouldBind(obj); err != nil {
			var ve validator.ValidationErrors
			if errors.As(err, &ve) {
				out := make([]string, len(ve))
				for i, fe := range ve {
					out[i] = fe.Field() + " " + fe.Tag()
				}
				response.Abort(c, response.INVALID_PARAMS, strings.Join(out, ", "))
				return
			}
			if err.Error() == "EOF" {
				response.Abort(c, response.INVALID_PARAMS, "请求体为空或格式不正确")
				return
			}
			response.Abort(c, response.INVALID_PARAMS, err.Error())
			return
		}
		c.Next()
	}
}

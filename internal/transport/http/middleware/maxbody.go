package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "bucketlist/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小；超限时绑定阶段读到 *http.MaxBytesError
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Error(resp.CodeTooLarge, "request body too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

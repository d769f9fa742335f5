package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bucketlist/internal/core/auth"
	"bucketlist/internal/transport/http/ez"
	resp "bucketlist/internal/transport/http/response"
)

// AuthJWT 校验 Bearer token，并把用户 ID 写入 ez.CtxUserID
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimSpace(strings.TrimPrefix(ah, "Bearer ")))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		c.Set("claims", claims)
		c.Set(ez.CtxUserID, claims.UID)
		c.Next()
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jiefei/utils"
)

// RequestID assigns a uuid to every request, echoes it in the X-Request-ID
// header and exposes it to the access log.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rid := ctx.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx.Set(utils.ContextRequestIDKey, rid)
		ctx.Header("X-Request-ID", rid)
		ctx.Next()
	}
}

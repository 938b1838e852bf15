package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id and logs it once it is done.
func (m Middleware) RequestLogger(ctx *gin.Context) {
	requestId := ctx.GetHeader(RequestIDHeader)
	if _, err := uuid.Parse(requestId); err != nil {
		requestId = uuid.NewString()
	}
	ctx.Set("requestId", requestId)
	ctx.Header(RequestIDHeader, requestId)

	start := time.Now()
	ctx.Next()

	m.app.Logger.Infow("Request handled",
		"requestId", requestId,
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"status", ctx.Writer.Status(),
		"bytes", ctx.Writer.Size(),
		"duration", time.Since(start),
		"clientIp", ctx.ClientIP(),
	)
}

package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ZapLogger logs every request with method, status and latency. API and
// visitor-page traffic is logged at info, everything else (health checks,
// swagger assets) at debug to keep the log quiet.
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"clientIP", c.ClientIP(),
		}
		if projectID := c.GetString("project_id"); projectID != "" {
			fields = append(fields, "projectID", projectID)
		}

		if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/p/") {
			log.Sugar().Infow("HTTP", fields...)
		} else {
			log.Sugar().Debugw("HTTP", fields...)
		}
	}
}

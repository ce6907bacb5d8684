package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const maxLogBodySize = 1 << 12 // 4 KB

// RequestLogGin logs every request and records its duration. Bodies are only
// captured at debug level.
func RequestLogGin(
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
	mDuration *prometheus.HistogramVec,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		var body string
		if logger.Core().Enabled(zap.DebugLevel) && c.Request.Body != nil {
			var buf bytes.Buffer
			limited := io.LimitReader(c.Request.Body, maxLogBodySize)
			_, _ = io.Copy(&buf, limited)
			rest, _ := io.ReadAll(c.Request.Body)
			body = buf.String()
			_ = c.Request.Body.Close()
			c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(buf.Bytes()), bytes.NewReader(rest)))
		}

		c.Next()

		elapsed := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		if mCounter != nil {
			mCounter.WithLabelValues("app_requests_total").Inc()
		}
		if mDuration != nil {
			mDuration.WithLabelValues(
				c.Request.Method,
				route,
				strconv.Itoa(c.Writer.Status()),
			).Observe(elapsed.Seconds())
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("url", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", elapsed),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if id := IdentityFrom(c); id != nil {
			fields = append(fields, zap.String("token_identifier", id.TokenIdentifier))
		}
		if body != "" {
			fields = append(fields, zap.String("body", body))
		}

		logger.Info("HTTP request", fields...)
	}
}

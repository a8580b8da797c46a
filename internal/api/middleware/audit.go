package middleware

import (
	"Portfolio/internal/pkg/logger"
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const (
	maxAuditBody  = 4096
	maxAuditField = 256
)

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.body.Len() < maxAuditBody {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

type errReader struct {
	err error
}

func (r errReader) Read([]byte) (int, error) {
	return 0, r.err
}

// AuditMiddleware 记录请求与响应，图片二进制不入日志
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var reqBody []byte
		if c.Request.Body != nil {
			var readErr error
			reqBody, readErr = io.ReadAll(c.Request.Body)
			var body io.Reader = bytes.NewReader(reqBody)
			if readErr != nil {
				// 保留读取错误，交由 handler 处理超限等情况
				body = io.MultiReader(body, errReader{readErr})
			}
			c.Request.Body = io.NopCloser(body)
		}

		rawQuery := c.Request.URL.RawQuery
		decodedQuery, err := url.QueryUnescape(rawQuery)
		if err != nil {
			decodedQuery = rawQuery
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", decodedQuery),
			log.String("req_body", auditBody(reqBody)),
		)

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		startTime := time.Now()

		c.Next()

		resBody := "[binary]"
		if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
			resBody = logger.Truncate(w.body.String(), maxAuditBody)
		}
		log.InfoContext(ctx, "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
			log.String("res_body", resBody),
		)
	}
}

// auditBody 隐藏密码并截断 base64 等长字段
func auditBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return logger.Truncate(string(body), maxAuditBody)
	}
	for k, v := range fields {
		if strings.EqualFold(k, "password") {
			fields[k] = "******"
			continue
		}
		if s, ok := v.(string); ok {
			fields[k] = logger.Truncate(s, maxAuditField)
		}
	}
	out, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(out)
}

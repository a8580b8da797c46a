package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLine struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Msg     string `json:"msg"`
	TraceID string `json:"trace_id,omitempty"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Status  int    `json:"status"`
	Latency string `json:"latency"`
	Client  string `json:"client_ip"`
}

// SetupGin 注册 JSON 格式的访问日志与 Recovery
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		Formatter: accessFormatter,
		SkipPaths: []string{"/api/ping"},
	}))

	r.Use(gin.Recovery())
}

func accessFormatter(p gin.LogFormatterParams) string {
	var traceID string
	if p.Keys != nil {
		if id, ok := p.Keys[TraceIDKey].(string); ok {
			traceID = id
		}
	}
	if traceID == "" && p.Request != nil {
		traceID = TraceID(p.Request.Context())
	}

	b, _ := json.Marshal(accessLine{
		Time:    p.TimeStamp.Format(time.RFC3339),
		Level:   "INFO",
		Msg:     "GIN_ACCESS",
		TraceID: traceID,
		Method:  p.Method,
		Path:    p.Path,
		Status:  p.StatusCode,
		Latency: p.Latency.String(),
		Client:  p.ClientIP,
	})
	return string(b) + "\n"
}

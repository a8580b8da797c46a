package logger

import (
	"Portfolio/internal/api/config"
	"io"
	log "log/slog"
	"os"
	"strings"
)

var LogWriter io.Writer = os.Stdout

// InitLogger 初始化全局 slog，输出 JSON 到 stdout
func InitLogger(cfg config.LogConfig) {
	log.SetDefault(New(os.Stdout, cfg.Level))
}

// New 构造带 trace_id 注入的 JSON logger
func New(w io.Writer, level string) *log.Logger {
	LogWriter = w
	h := log.NewJSONHandler(w, &log.HandlerOptions{Level: ParseLevel(level)})
	return log.New(&ContextHandler{h})
}

// ParseLevel 解析日志级别，未知值按 info 处理
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

// Truncate 截断过长的日志字段
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "...[truncated]"
}

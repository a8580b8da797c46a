package handler

import (
	"Portfolio/internal/pkg/consts"
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryInt 解析整数查询参数，非法值回退为默认值
func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func currentUserID(c *gin.Context) string {
	return c.GetString(consts.CtxUserID)
}

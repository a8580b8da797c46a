package minio

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GalleryPrefix 相册对象统一前缀，代理接口只放行该前缀
const GalleryPrefix = "gallery/"

// ProxyPath 图片代理接口路径
const ProxyPath = "/api/gallery/image"

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFileName 除字母数字、点、连字符外全部替换为下划线
func SanitizeFileName(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// NewGalleryKey 生成 gallery/{毫秒时间戳}-{随机串}-{文件名}
func NewGalleryKey(now time.Time, fileName string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s%d-%s-%s", GalleryPrefix, now.UnixMilli(), random, SanitizeFileName(fileName))
}

// ProxyURL 返回经由应用代理访问对象的相对 URL
func ProxyURL(key string) string {
	return ProxyPath + "?key=" + url.QueryEscape(key)
}

// IsGalleryKey 判断是否为相册对象
func IsGalleryKey(key string) bool {
	return strings.HasPrefix(key, GalleryPrefix)
}

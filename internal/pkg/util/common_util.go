package util

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	stripPolicy    = bluemonday.StrictPolicy()
	markdownPolicy = bluemonday.UGCPolicy()
	markdown       = goldmark.New(goldmark.WithExtensions(extension.GFM))
)

const sanitizePasses = 4

// SanitizeText 去除 HTML 标签与首尾空白，保留纯文本
// 实体反转义后重新清洗，直到结果不再变化，转义过的标签不会还原成真实标签
func SanitizeText(s string) string {
	for range sanitizePasses {
		next := html.UnescapeString(stripPolicy.Sanitize(s))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	// 嵌套过深的实体保留转义形式
	return strings.TrimSpace(stripPolicy.Sanitize(s))
}

// RenderMarkdown 将 markdown 渲染为经过清洗的 HTML
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return markdownPolicy.Sanitize(buf.String()), nil
}

// ClampPage 规范分页参数，返回 page、limit 与 skip
func ClampPage(page, limit, defaultLimit, maxLimit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, (page - 1) * limit
}

// PtrString 用于将 string 转换为 *string
func PtrString(s string) *string {
	return &s
}

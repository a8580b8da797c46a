package util

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

var ErrBase64Invalid = errors.New("invalid base64 payload")

// DecodeBase64Image 解码 base64 图片，兼容 data URL 前缀
func DecodeBase64Image(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, ErrBase64Invalid
		}
		payload = payload[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// 部分客户端不带填充
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, ErrBase64Invalid
		}
	}
	return data, nil
}

// DetectMimeType 根据文件头嗅探 MIME 类型，不含参数部分
func DetectMimeType(data []byte) string {
	mt := mimetype.Detect(data).String()
	if idx := strings.Index(mt, ";"); idx >= 0 {
		mt = mt[:idx]
	}
	return mt
}

// ImageDimensions 尽力解析图片宽高，无法解码时返回 0
func ImageDimensions(data []byte) (int, int) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

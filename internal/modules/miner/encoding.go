package miner

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"urlsucker/internal/core/logger"
)

// ===========================================
// 字符编码处理工具
// ===========================================

// charsetRegex 从Content-Type中提取charset参数
var charsetRegex = regexp.MustCompile(`charset=([^;,\s]+)`)

// EncodingDetector 字符编码检测器
// 非UTF-8编码的脚本先转码再提取，避免正则在乱码上空转
type EncodingDetector struct{}

// NewEncodingDetector 创建编码检测器
func NewEncodingDetector() *EncodingDetector {
	return &EncodingDetector{}
}

// DetectAndConvert 检测并转换字符编码
func (ed *EncodingDetector) DetectAndConvert(body, contentType string) string {
	if body == "" {
		return body
	}

	// 1. 优先采用Content-Type声明的charset
	if cs := ed.extractCharsetFromContentType(contentType); cs != "" {
		if converted := ed.convertCharset(body, cs); converted != "" {
			logger.Debugf("使用Content-Type检测到编码: %s", cs)
			return converted
		}
	}

	// 2. 内容探测，仅在高置信度时转换
	if detected, certain := ed.detectCharsetFromContent(body); certain {
		if converted := ed.convertCharset(body, detected); converted != "" {
			logger.Debugf("自动检测到编码: %s", detected)
			return converted
		}
	}

	// 3. 检测失败，按原始内容处理
	return body
}

// extractCharsetFromContentType 从Content-Type中提取charset
func (ed *EncodingDetector) extractCharsetFromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}

	matches := charsetRegex.FindStringSubmatch(strings.ToLower(contentType))
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return ""
}

// detectCharsetFromContent 从内容探测字符编码
func (ed *EncodingDetector) detectCharsetFromContent(body string) (string, bool) {
	_, name, certain := charset.DetermineEncoding([]byte(body), "")
	return name, certain
}

// convertCharset 转换字符编码
func (ed *EncodingDetector) convertCharset(body, cs string) string {
	cs = strings.ToLower(cs)

	// 已是UTF-8，直接返回
	if cs == "utf-8" || cs == "utf8" {
		return body
	}

	if cs == "gbk" || cs == "gb2312" || cs == "gb18030" {
		return ed.convertFromGBK(body)
	}

	if cs == "big5" {
		return ed.convertFromBig5(body)
	}

	logger.Debugf("不支持的编码格式: %s, 返回原始内容", cs)
	return body
}

// convertFromGBK 从GBK编码转换为UTF-8
func (ed *EncodingDetector) convertFromGBK(gbkStr string) string {
	reader := transform.NewReader(strings.NewReader(gbkStr), simplifiedchinese.GBK.NewDecoder())
	utf8Bytes, err := io.ReadAll(reader)
	if err != nil {
		logger.Debugf("GBK转换失败: %v", err)
		return gbkStr
	}
	return string(utf8Bytes)
}

// convertFromBig5 从Big5编码转换为UTF-8
func (ed *EncodingDetector) convertFromBig5(big5Str string) string {
	reader := transform.NewReader(strings.NewReader(big5Str), traditionalchinese.Big5.NewDecoder())
	utf8Bytes, err := io.ReadAll(reader)
	if err != nil {
		logger.Debugf("Big5转换失败: %v", err)
		return big5Str
	}
	return string(utf8Bytes)
}

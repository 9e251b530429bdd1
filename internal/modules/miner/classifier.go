package miner

import "strings"

// ===========================================
// 响应分类器
// ===========================================

// jsContentTypes JavaScript响应的Content-Type特征
var jsContentTypes = []string{
	"javascript",
	"application/x-javascript",
	"text/javascript",
}

// Classifier 决定响应体是否值得送入提取器
type Classifier struct{}

// NewClassifier 创建响应分类器
func NewClassifier() *Classifier {
	return &Classifier{}
}

// IsJSLike 根据Content-Type或请求URL后缀判断响应是否为JavaScript
// 两个入参都允许为空，缺失按不匹配处理，不算错误
func (c *Classifier) IsJSLike(contentType, sourceURL string) bool {
	lowerType := strings.ToLower(contentType)
	for _, marker := range jsContentTypes {
		if strings.Contains(lowerType, marker) {
			return true
		}
	}

	return strings.HasSuffix(strings.ToLower(sourceURL), ".js")
}

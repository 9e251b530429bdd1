package miner

import "testing"

func TestClassifier_IsJSLike(t *testing.T) {
	classifier := NewClassifier()

	testCases := []struct {
		name        string
		contentType string
		sourceURL   string
		expected    bool
	}{
		{
			name:        "标准JS类型",
			contentType: "application/javascript",
			sourceURL:   "https://example.com/page",
			expected:    true,
		},
		{
			name:        "带charset参数的JS类型",
			contentType: "text/javascript; charset=utf-8",
			sourceURL:   "https://example.com/page",
			expected:    true,
		},
		{
			name:        "旧式x-javascript类型",
			contentType: "application/x-javascript",
			sourceURL:   "",
			expected:    true,
		},
		{
			name:        "类型大小写不敏感",
			contentType: "Application/JavaScript",
			sourceURL:   "",
			expected:    true,
		},
		{
			name:        "类型不匹配但URL以.js结尾",
			contentType: "text/plain",
			sourceURL:   "https://example.com/static/app.js",
			expected:    true,
		},
		{
			name:        "URL后缀大小写不敏感",
			contentType: "",
			sourceURL:   "https://example.com/APP.JS",
			expected:    true,
		},
		{
			name:        "HTML响应不处理",
			contentType: "text/html",
			sourceURL:   "https://example.com/index.html",
			expected:    false,
		},
		{
			name:        "两个入参都为空",
			contentType: "",
			sourceURL:   "",
			expected:    false,
		},
		{
			name:        ".json后缀不算JS",
			contentType: "application/json",
			sourceURL:   "https://example.com/data.json",
			expected:    false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := classifier.IsJSLike(tc.contentType, tc.sourceURL)
			if result != tc.expected {
				t.Errorf("contentType=%q sourceURL=%q, 预期: %v, 实际: %v",
					tc.contentType, tc.sourceURL, tc.expected, result)
			}
		})
	}
}

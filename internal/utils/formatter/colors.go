package formatter

import (
	"runtime"
	"sync/atomic"
)

// ANSI颜色代码常量
const (
	ColorReset  = "\033[0m"  // 重置
	ColorGreen  = "\033[32m" // 绿色
	ColorRed    = "\033[31m" // 红色
	ColorYellow = "\033[33m" // 黄色
	ColorBlue   = "\033[34m" // 蓝色
	ColorCyan   = "\033[36m" // 青色
	ColorBold   = "\033[1m"  // 加粗
)

// FormatBold 加粗显示
func FormatBold(s string) string {
	if !shouldUseColors() {
		return s
	}
	return ColorBold + s + ColorReset
}

// FormatHighlight 高亮显示关键信息
func FormatHighlight(s string) string {
	if !shouldUseColors() {
		return s
	}
	return ColorCyan + s + ColorReset
}

// shouldUseColors 检查是否应该使用彩色输出
func shouldUseColors() bool {
	if atomic.LoadInt32(&globalColorEnabled) == 0 {
		return false
	}
	if runtime.GOOS == "windows" {
		return windowsANSISupported
	}
	return true
}

var (
	windowsANSISupported bool
	globalColorEnabled   int32 = 1
)

// SetWindowsANSISupported 设置Windows ANSI支持状态
func SetWindowsANSISupported(supported bool) {
	windowsANSISupported = supported
}

// SetColorEnabled 控制全局颜色输出
func SetColorEnabled(enabled bool) {
	if enabled {
		atomic.StoreInt32(&globalColorEnabled, 1)
	} else {
		atomic.StoreInt32(&globalColorEnabled, 0)
	}
}

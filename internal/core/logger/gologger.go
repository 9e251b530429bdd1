package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

// ===========================================
// urlsucker日志系统 - gologger兼容层
// ===========================================

// LogConfig 日志配置结构
type LogConfig struct {
	Level       string `yaml:"level"`        // 日志级别
	ColorOutput bool   `yaml:"color_output"` // 彩色输出
}

// MinerLogger urlsucker日志封装器
// 提供简洁的全局日志API，底层使用gologger实现级别控制
type MinerLogger struct {
	config       *LogConfig
	currentLevel levels.Level
}

// 全局日志实例
var globalLogger *MinerLogger

// ===========================================
// 初始化和配置
// ===========================================

// InitializeLogger 初始化日志系统
func InitializeLogger(config *LogConfig) error {
	if config == nil {
		config = getDefaultLogConfig()
	}

	// 配置gologger级别，格式化由本层自行实现
	gologger.DefaultLogger.SetMaxLevel(parseLogLevel(config.Level))
	os.Setenv("GOLOGGER_TIMESTAMP", "false")
	if !config.ColorOutput {
		os.Setenv("NO_COLOR", "1")
	}

	globalLogger = &MinerLogger{
		config:       config,
		currentLevel: parseLogLevel(config.Level),
	}

	return nil
}

// parseLogLevel 解析日志级别
func parseLogLevel(levelStr string) levels.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return levels.LevelDebug
	case "info":
		return levels.LevelInfo
	case "warn", "warning":
		return levels.LevelWarning
	case "error":
		return levels.LevelError
	case "fatal":
		return levels.LevelFatal
	default:
		return levels.LevelInfo
	}
}

// getDefaultLogConfig 获取默认日志配置
func getDefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:       "info",
		ColorOutput: true,
	}
}

// ===========================================
// 基础日志方法
// ===========================================

// Info 信息级别日志
func (l *MinerLogger) Info(args ...interface{}) {
	l.printWithFormat(levels.LevelInfo, fmt.Sprint(args...))
}

// Infof 格式化信息级别日志
func (l *MinerLogger) Infof(format string, args ...interface{}) {
	l.printWithFormat(levels.LevelInfo, fmt.Sprintf(format, args...))
}

// Debug 调试级别日志
func (l *MinerLogger) Debug(args ...interface{}) {
	l.printWithFormat(levels.LevelDebug, fmt.Sprint(args...))
}

// Debugf 格式化调试级别日志
func (l *MinerLogger) Debugf(format string, args ...interface{}) {
	l.printWithFormat(levels.LevelDebug, fmt.Sprintf(format, args...))
}

// Error 错误级别日志
func (l *MinerLogger) Error(args ...interface{}) {
	l.printWithFormat(levels.LevelError, fmt.Sprint(args...))
}

// Errorf 格式化错误级别日志
func (l *MinerLogger) Errorf(format string, args ...interface{}) {
	l.printWithFormat(levels.LevelError, fmt.Sprintf(format, args...))
}

// Warn 警告级别日志
func (l *MinerLogger) Warn(args ...interface{}) {
	l.printWithFormat(levels.LevelWarning, fmt.Sprint(args...))
}

// Warnf 格式化警告级别日志
func (l *MinerLogger) Warnf(format string, args ...interface{}) {
	l.printWithFormat(levels.LevelWarning, fmt.Sprintf(format, args...))
}

// Fatal 致命错误日志
func (l *MinerLogger) Fatal(args ...interface{}) {
	l.printWithFormat(levels.LevelFatal, fmt.Sprint(args...))
	os.Exit(1)
}

// Fatalf 格式化致命错误日志
func (l *MinerLogger) Fatalf(format string, args ...interface{}) {
	l.printWithFormat(levels.LevelFatal, fmt.Sprintf(format, args...))
	os.Exit(1)
}

// printWithFormat 按 [LEVEL] message 的简洁格式输出
func (l *MinerLogger) printWithFormat(level levels.Level, message string) {
	// 级别过滤：超过当前最大级别的日志直接丢弃
	if level > l.currentLevel {
		return
	}

	var levelColor, resetColor string
	if l.config.ColorOutput {
		switch level {
		case levels.LevelDebug:
			levelColor = "\033[36m" // 青色
		case levels.LevelInfo:
			levelColor = "\033[34m" // 蓝色
		case levels.LevelWarning:
			levelColor = "\033[33m" // 黄色
		case levels.LevelError:
			levelColor = "\033[31m" // 红色
		case levels.LevelFatal:
			levelColor = "\033[35m" // 紫色
		}
		resetColor = "\033[0m"
	}

	var levelText string
	switch level {
	case levels.LevelDebug:
		levelText = "DBG"
	case levels.LevelInfo:
		levelText = "INF"
	case levels.LevelWarning:
		levelText = "WRN"
	case levels.LevelError:
		levelText = "ERR"
	case levels.LevelFatal:
		levelText = "FTL"
	default:
		levelText = "INF"
	}

	var output string
	if levelColor != "" {
		output = fmt.Sprintf("%s[%s]%s %s", levelColor, levelText, resetColor, message)
	} else {
		output = fmt.Sprintf("[%s] %s", levelText, message)
	}

	if level == levels.LevelError || level == levels.LevelFatal {
		fmt.Fprintln(os.Stderr, output)
	} else {
		fmt.Println(output)
	}
}

// ===========================================
// 全局日志函数
// ===========================================

// get 获取全局实例，未初始化时退回默认配置
func get() *MinerLogger {
	if globalLogger != nil {
		return globalLogger
	}
	return &MinerLogger{
		config:       getDefaultLogConfig(),
		currentLevel: levels.LevelInfo,
	}
}

// Info 全局信息日志
func Info(args ...interface{}) {
	get().Info(args...)
}

// Infof 全局格式化信息日志
func Infof(format string, args ...interface{}) {
	get().Infof(format, args...)
}

// Debug 全局调试日志
func Debug(args ...interface{}) {
	get().Debug(args...)
}

// Debugf 全局格式化调试日志
func Debugf(format string, args ...interface{}) {
	get().Debugf(format, args...)
}

// Error 全局错误日志
func Error(args ...interface{}) {
	get().Error(args...)
}

// Errorf 全局格式化错误日志
func Errorf(format string, args ...interface{}) {
	get().Errorf(format, args...)
}

// Warn 全局警告日志
func Warn(args ...interface{}) {
	get().Warn(args...)
}

// Warnf 全局格式化警告日志
func Warnf(format string, args ...interface{}) {
	get().Warnf(format, args...)
}

// Fatal 全局致命错误日志
func Fatal(args ...interface{}) {
	get().Fatal(args...)
}

// Fatalf 全局格式化致命错误日志
func Fatalf(format string, args ...interface{}) {
	get().Fatalf(format, args...)
}

// ===========================================
// 工具函数
// ===========================================

// SetLogLevel 设置日志级别
func SetLogLevel(levelStr string) {
	level := parseLogLevel(levelStr)
	gologger.DefaultLogger.SetMaxLevel(level)

	if globalLogger != nil {
		globalLogger.currentLevel = level
	}
}

// SetColorOutput 开关彩色输出
func SetColorOutput(enabled bool) {
	if globalLogger != nil {
		globalLogger.config.ColorOutput = enabled
	}
	if !enabled {
		os.Setenv("NO_COLOR", "1")
	}
}

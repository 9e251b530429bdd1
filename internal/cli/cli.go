package cli

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/lqqyt2423/go-mitmproxy/proxy"

	"urlsucker/internal/api"
	"urlsucker/internal/core/config"
	"urlsucker/internal/core/logger"
	"urlsucker/internal/modules/forwarder"
	"urlsucker/internal/modules/miner"
	report "urlsucker/internal/modules/reporter"
	"urlsucker/internal/utils/formatter"
)

// CLIArgs CLI参数结构体
type CLIArgs struct {
	Port     int      // 代理监听端口 (-lp)
	APIPort  int      // API监听端口 (-ap)
	Hosts    []string // 限定挖掘的主机范围 (-u)
	Output   string   // 报告文件输出路径 (-o)
	NoGreedy bool     // 关闭贪婪提取 (--no-greedy)
	Debug    bool     // 调试模式 (--debug)
	NoColor  bool     // 禁用彩色输出 (-nc)
}

// CLIApp CLI应用程序
type CLIApp struct {
	proxy      *proxy.Proxy
	minerAddon *miner.MinerAddon
	forwarder  *forwarder.Forwarder
	args       *CLIArgs
}

var app *CLIApp

// Execute 执行CLI命令
func Execute() {
	// 优先初始化配置系统
	if err := config.InitConfig(); err != nil {
		fmt.Printf("配置文件加载失败，使用默认配置: %v\n", err)
	}

	// 初始化日志系统
	logConfig := config.GetLogConfig()
	loggerConfig := &logger.LogConfig{
		Level:       logConfig.Level,
		ColorOutput: logConfig.ColorOutput,
	}
	if err := logger.InitializeLogger(loggerConfig); err != nil {
		logger.InitializeLogger(nil)
	}
	logger.Debug("日志系统初始化完成")

	// Windows 10+默认支持ANSI颜色
	if runtime.GOOS == "windows" {
		formatter.SetWindowsANSISupported(true)
	}

	// 解析命令行参数
	args := ParseCLIArgs()

	// 应用CLI参数到配置
	applyArgsToConfig(args)

	showBanner(args)

	var err error
	app, err = initializeApp(args)
	if err != nil {
		logger.Fatalf("初始化失败: %v", err)
	}

	// 启动代理服务
	go func() {
		logger.Infof("Proxy listening on %s", config.GetServerConfig().Listen)
		if err := app.proxy.Start(); err != nil {
			logger.Fatalf("代理服务启动失败: %v", err)
		}
	}()

	// 启动API服务
	apiConfig := config.GetAPIConfig()
	if apiConfig.Enable {
		server := api.NewServer(app.minerAddon, app.forwarder)
		router := server.SetupRouter()
		go func() {
			logger.Infof("API listening on %s", apiConfig.Listen)
			if err := router.Run(apiConfig.Listen); err != nil {
				logger.Errorf("API服务启动失败: %v", err)
			}
		}()
	}

	waitForSignal()
}

// ParseCLIArgs 解析命令行参数
func ParseCLIArgs() *CLIArgs {
	var (
		localPort = flag.Int("lp", 9080, "本地代理监听端口 (默认: 9080)")
		apiPort   = flag.Int("ap", 9081, "API服务监听端口 (默认: 9081)")
		hostsStr  = flag.String("u", "", "限定挖掘的主机，多个主机用逗号分隔 (例如: -u example.com,api.example.com)")
		output    = flag.String("o", "", "退出时输出报告文件路径，支持 .json / .xlsx (默认不输出)")
		noGreedy  = flag.Bool("no-greedy", false, "关闭贪婪提取模式，只提取形态规整的候选")
		debug     = flag.Bool("debug", false, "启用调试模式，显示详细日志 (默认: 仅显示INFO及以上级别)")
		noColor   = flag.Bool("nc", false, "禁用彩色输出，适用于控制台不支持ANSI的环境")
		help      = flag.Bool("h", false, "显示帮助信息")
		helpLong  = flag.Bool("help", false, "显示帮助信息")
	)

	flag.Usage = showCustomHelp
	flag.Parse()

	if *help || *helpLong {
		flag.Usage()
		os.Exit(0)
	}

	args := &CLIArgs{
		Port:     *localPort,
		APIPort:  *apiPort,
		Output:   *output,
		NoGreedy: *noGreedy,
		Debug:    *debug,
		NoColor:  *noColor,
	}

	if *hostsStr != "" {
		for _, host := range strings.Split(*hostsStr, ",") {
			host = strings.TrimSpace(host)
			if host == "" {
				continue
			}
			args.Hosts = append(args.Hosts, host)
			// 同时匹配子域名
			if !strings.HasPrefix(host, "*.") {
				args.Hosts = append(args.Hosts, "*."+host)
			}
		}
	}

	return args
}

// showCustomHelp 显示自定义帮助信息
func showCustomHelp() {
	prog := filepath.Base(os.Args[0])
	fmt.Printf(`
urlsucker - 被动JS URL挖掘代理

用法:
  %[1]s [options]                        # 监听 :9080，挖掘所有经过的流量
  %[1]s -u example.com -o urls.xlsx      # 限定主机并在退出时导出报告

代理与API:
  -lp int              本地代理监听端口（默认 9080）
  -ap int              API服务监听端口（默认 9081）
  -u string            限定挖掘的主机，逗号分隔；自动包含子域名

挖掘控制:
  --no-greedy          关闭贪婪提取，只保留形态规整的候选
  --debug              输出调试日志

输出:
  -o string            退出时写入报告文件 (.json / .xlsx)
  -nc                  禁用彩色输出

`, prog)
}

// applyArgsToConfig 将CLI参数应用到配置系统
func applyArgsToConfig(args *CLIArgs) {
	serverConfig := config.GetServerConfig()
	serverConfig.Listen = fmt.Sprintf(":%d", args.Port)

	apiConfig := config.GetAPIConfig()
	apiConfig.Listen = fmt.Sprintf(":%d", args.APIPort)

	if len(args.Hosts) > 0 {
		hostsConfig := config.GetHostsConfig()
		hostsConfig.Allow = args.Hosts
	}

	if args.NoGreedy {
		config.GetMinerConfig().Greedy = false
	}

	if args.Debug {
		logger.SetLogLevel("debug")
		logger.Debug("调试模式已启用")
	}

	if args.NoColor {
		logger.SetColorOutput(false)
		formatter.SetColorEnabled(false)
	}
}

// showBanner 显示启动横幅
func showBanner(args *CLIArgs) {
	mode := "greedy"
	if args.NoGreedy {
		mode = "conservative"
	}

	fmt.Println(formatter.FormatBold("urlsucker") + " - passive JS URL miner")
	fmt.Printf("  proxy   %s\n", formatter.FormatHighlight(fmt.Sprintf(":%d", args.Port)))
	fmt.Printf("  api     %s\n", formatter.FormatHighlight(fmt.Sprintf(":%d", args.APIPort)))
	fmt.Printf("  mode    %s\n", mode)
	if len(args.Hosts) > 0 {
		fmt.Printf("  hosts   %s\n", strings.Join(args.Hosts, ", "))
	}
	fmt.Println()
}

// initializeApp 初始化应用程序
func initializeApp(args *CLIArgs) (*CLIApp, error) {
	logger.Debug("创建代理服务器...")
	proxyServer, err := createProxy()
	if err != nil {
		return nil, fmt.Errorf("创建代理服务器失败: %v", err)
	}

	logger.Debug("创建URL挖掘插件...")
	minerAddon := miner.NewMinerAddon()
	proxyServer.AddAddon(minerAddon)

	logger.Debug("创建转发器...")
	fw := forwarder.NewForwarder()

	return &CLIApp{
		proxy:      proxyServer,
		minerAddon: minerAddon,
		forwarder:  fw,
		args:       args,
	}, nil
}

// createProxy 创建代理服务器
func createProxy() (*proxy.Proxy, error) {
	serverConfig := config.GetServerConfig()

	opts := &proxy.Options{
		Addr:              serverConfig.Listen,
		StreamLargeBodies: serverConfig.StreamLargebody,
		SslInsecure:       serverConfig.SSLInsecure,
	}
	return proxy.NewProxy(opts)
}

// waitForSignal 等待中断信号
func waitForSignal() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	fmt.Println()
	logger.Info(sig)

	cleanup()
}

// cleanup 清理资源
func cleanup() {
	if app != nil {
		// 退出前按需落盘报告
		if app.args != nil && app.args.Output != "" {
			writeReport(app.args.Output)
		}

		if err := app.proxy.Close(); err != nil {
			logger.Errorf("停止代理服务器失败: %v", err)
		}
	}

	time.Sleep(500 * time.Millisecond)
	os.Exit(0)
}

// writeReport 按扩展名写出报告
func writeReport(outputPath string) {
	rows := app.minerAddon.Snapshot("")
	logger.Infof("共挖掘到 %d 条URL", len(rows))

	var err error
	switch {
	case strings.HasSuffix(strings.ToLower(outputPath), ".xlsx"):
		_, err = report.GenerateDiscoveryExcel(rows, outputPath)
	case strings.HasSuffix(strings.ToLower(outputPath), ".json"):
		result := report.GenerateDiscoveryJSON(rows, app.forwarder.OrganizerEntries(), "")
		_, err = report.SaveDiscoveryJSON(result, outputPath)
	default:
		err = fmt.Errorf("不支持的报告格式: %s", outputPath)
	}
	if err != nil {
		logger.Errorf("报告生成失败: %v", err)
	}
}

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"urlsucker/internal/modules/forwarder"
	"urlsucker/internal/modules/miner"
	report "urlsucker/internal/modules/reporter"
)

// Server URL视图REST服务
// 对外暴露挖掘结果的查询、过滤、转发与导出能力
type Server struct {
	miner     *miner.MinerAddon
	forwarder *forwarder.Forwarder
}

// NewServer 创建API服务
func NewServer(minerAddon *miner.MinerAddon, fw *forwarder.Forwarder) *Server {
	return &Server{
		miner:     minerAddon,
		forwarder: fw,
	}
}

// SetupRouter 初始化Gin路由
func (s *Server) SetupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), corsMiddleware)

	v1 := r.Group("/api/v1")
	{
		v1.OPTIONS("/*path", func(c *gin.Context) {
			c.AbortWithStatus(http.StatusNoContent)
		})
		v1.GET("/urls", s.listURLsHandler)
		v1.POST("/clear", s.clearHandler)
		v1.GET("/config", s.getConfigHandler)
		v1.POST("/config", s.updateConfigHandler)
		v1.POST("/replay", s.replayHandler)
		v1.GET("/replay", s.replayHistoryHandler)
		v1.POST("/organizer", s.organizerHandler)
		v1.GET("/organizer", s.organizerListHandler)
		v1.POST("/export", s.exportHandler)
	}

	return r
}

// listURLsHandler 查询发现结果
// filter参数缺省时沿用当前会话的过滤串
func (s *Server) listURLsHandler(c *gin.Context) {
	filter := s.miner.GetSearchFilter()
	if v, ok := c.GetQuery("filter"); ok {
		filter = v
		s.miner.SetSearchFilter(v)
	}

	rows := s.miner.Snapshot(filter)
	sendSuccess(c, URLListResponse{
		Total:  len(rows),
		Filter: filter,
		URLs:   rows,
	})
}

func (s *Server) clearHandler(c *gin.Context) {
	s.miner.Clear()
	s.miner.SetSearchFilter("")
	sendSuccess(c, gin.H{"total": 0})
}

func (s *Server) getConfigHandler(c *gin.Context) {
	sendSuccess(c, ConfigResponse{
		Enabled: s.miner.IsEnabled(),
		Greedy:  s.miner.IsGreedy(),
		Search:  s.miner.GetSearchFilter(),
		Total:   s.miner.Count(),
	})
}

func (s *Server) updateConfigHandler(c *gin.Context) {
	var req ConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	if req.Greedy != nil {
		s.miner.SetGreedy(*req.Greedy)
	}
	if req.Search != nil {
		s.miner.SetSearchFilter(*req.Search)
	}

	s.getConfigHandler(c)
}

// replayHandler 异步复测, 请求不等待目标响应
func (s *Server) replayHandler(c *gin.Context) {
	var req ForwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	target, err := forwarder.BuildTargetURL(req.Host, req.Path)
	if err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	go s.forwarder.SendToReplay(req.Host, req.Path)
	c.JSON(http.StatusAccepted, APIResponse{
		Code:    0,
		Message: "ok",
		Data:    gin.H{"target": target},
	})
}

func (s *Server) replayHistoryHandler(c *gin.Context) {
	sendSuccess(c, s.forwarder.ReplayHistory())
}

// organizerHandler 归档一条结果, 支持host+path或直接URL两种形态
func (s *Server) organizerHandler(c *gin.Context) {
	var req OrganizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	if req.Host != "" {
		if _, err := forwarder.BuildTargetURL(req.Host, req.Path); err != nil {
			sendError(c, http.StatusBadRequest, err)
			return
		}
		s.forwarder.SendToOrganizer(req.Host, req.Path)
		sendSuccess(c, s.forwarder.OrganizerEntries())
		return
	}

	entry, err := s.forwarder.AddOrganizerNote(req.URL)
	if err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}
	sendSuccess(c, entry)
}

func (s *Server) organizerListHandler(c *gin.Context) {
	sendSuccess(c, s.forwarder.OrganizerEntries())
}

// exportHandler 按扩展名导出JSON或Excel报告
func (s *Server) exportHandler(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}
	if req.Path == "" {
		sendError(c, http.StatusBadRequest, errors.New("path required"))
		return
	}

	filter := req.Filter
	if filter == "" {
		filter = s.miner.GetSearchFilter()
	}
	rows := s.miner.Snapshot(filter)

	var (
		saved string
		err   error
	)
	switch {
	case strings.HasSuffix(strings.ToLower(req.Path), ".xlsx"):
		saved, err = report.GenerateDiscoveryExcel(rows, req.Path)
	case strings.HasSuffix(strings.ToLower(req.Path), ".json"):
		result := report.GenerateDiscoveryJSON(rows, s.forwarder.OrganizerEntries(), filter)
		saved, err = report.SaveDiscoveryJSON(result, req.Path)
	default:
		sendError(c, http.StatusBadRequest, errors.New("unsupported export format, use .json or .xlsx"))
		return
	}
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}

	sendSuccess(c, gin.H{"path": saved, "total": len(rows)})
}

func sendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
	})
}

func sendError(c *gin.Context, status int, err error) {
	c.JSON(status, APIResponse{
		Code:    status,
		Message: err.Error(),
	})
}

func corsMiddleware(c *gin.Context) {
	origin := c.GetHeader("Origin")
	if origin == "" {
		origin = "*"
	}

	c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
	c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

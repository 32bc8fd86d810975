package api

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// NewEngine returns a gin engine with recovery, request logging and all
// routes registered.
func NewEngine(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger()))
	RegisterRoutes(r, s)
	return r
}

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/catalog", s.catalogHandler)
		api.GET("/qr", s.qrHandler)

		api.POST("/sessions", s.createSession)
		api.GET("/sessions/:id", s.getSession)
		api.DELETE("/sessions/:id", s.deleteSession)
		api.POST("/sessions/:id/toggle", s.toggleHandler)
		api.POST("/sessions/:id/mode", s.modeHandler)
		api.POST("/sessions/:id/clear", s.clearHandler)
		api.GET("/sessions/:id/preview", s.previewHandler)
		api.GET("/sessions/:id/summary", s.summaryHandler)
		api.POST("/sessions/:id/export", s.exportHandler)
	}
	if s.PhotosDir != "" {
		r.Static("/photos", s.PhotosDir)
	}
}

func requestLogger(l *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start).Round(time.Millisecond))
	}
}

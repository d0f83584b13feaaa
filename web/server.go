package web

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"audio-notes/internal/app/repository"
	"audio-notes/internal/app/status"
	"audio-notes/web/handlers"
)

// Server exposes the pipeline's status surface: health snapshot, recent
// transcript data for the external dashboard, and prometheus metrics. It is
// read-only; nothing here mutates pipeline state.
type Server struct {
	addr   string
	engine *gin.Engine
	log    *zap.Logger
}

// NewServer builds the HTTP server on addr.
func NewServer(addr string, dao repository.TranscriptionDAO, checker *status.Checker, log *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	api := handlers.NewAPIHandler(dao, checker)
	engine.GET("/api/status", api.Status)
	engine.GET("/api/data", api.Data)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Server{addr: addr, engine: engine, log: log.Named("web")}
}

// Run blocks serving HTTP until the listener fails.
func (s *Server) Run() error {
	s.log.Info("status server listening", zap.String("addr", s.addr))
	return s.engine.Run(s.addr)
}

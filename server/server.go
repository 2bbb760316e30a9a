package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/hoffmann-muki/omnireduce-experiments/config"
)

// Server exposes run statistics over HTTP.
type Server struct {
	engine        *gin.Engine
	runService    *RunService
	configService *ConfigService
	port          int
}

// NewServer creates the HTTP server. cfgFile is where config updates made
// through the API are persisted.
func NewServer(cfgFile string, cfg *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		engine:        gin.Default(),
		runService:    NewRunService(cfg),
		configService: NewConfigService(cfgFile, cfg),
		port:          cfg.Server.Port,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.engine.Group("/api")
	{
		runs := api.Group("/runs")
		{
			runs.GET("", s.runService.ListRuns)           // list run directories
			runs.GET("/summary", s.runService.GetSummary) // stats for one run
		}

		api.GET("/sweep", s.runService.GetSweep) // stats for every run
		api.GET("/probe", s.runService.GetProbe) // completeness of every run

		configs := api.Group("/config")
		{
			configs.GET("", s.configService.GetConfig)
			configs.PUT("", s.configService.UpdateConfig)
			configs.POST("/validate", s.configService.ValidateConfig)
		}
	}

	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, Success(gin.H{"status": "ok"}))
	})
}

// Start runs the server until it fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	fmt.Printf("HTTP Server starting on http://localhost%s\n", addr)
	fmt.Println("API Endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/runs")
	fmt.Println("  GET  /api/runs/summary?dir=<run>")
	fmt.Println("  GET  /api/sweep")
	fmt.Println("  GET  /api/probe")
	fmt.Println("  GET  /api/config")
	fmt.Println("  PUT  /api/config")
	fmt.Println("  POST /api/config/validate")
	return s.engine.Run(addr)
}

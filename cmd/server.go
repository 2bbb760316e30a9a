package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoffmann-muki/omnireduce-experiments/config"
	"github.com/hoffmann-muki/omnireduce-experiments/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API server for run statistics",
	Long: `Start an HTTP API server that exposes run discovery, latency
statistics and configuration management.

The server provides the following APIs:
  - GET  /api/runs                 List run directories under the results root
  - GET  /api/runs/summary?dir=X   Latency statistics for one run
  - GET  /api/sweep                Statistics for every run
  - GET  /api/probe                Worker log completeness for every run
  - GET  /api/config               Active configuration
  - PUT  /api/config               Validate and persist a new configuration
  - POST /api/config/validate      Validate a configuration without saving

Example:
  omnistat server
  omnistat server --port 8080`,
	Run: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "HTTP server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) {
	path := configPath()
	if err := config.EnsureConfigFile(path); err != nil {
		fmt.Printf("Error preparing config file: %v\n", err)
		return
	}

	cfg, err := loadConfigOrDefault()
	if err != nil {
		fmt.Printf("Error reading config: %v\n", err)
		return
	}

	if serverPort > 0 {
		cfg.Server.Port = serverPort
	}

	srv := server.NewServer(path, cfg)
	if err := srv.Start(); err != nil {
		fmt.Printf("Failed to start server: %v\n", err)
	}
}

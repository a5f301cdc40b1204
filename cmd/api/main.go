package main

import (
	"os"

	"github.com/attendtrack/attendtrack/internal/pkg/logger"
	"github.com/attendtrack/attendtrack/internal/server"
)

// @title AttendTrack API
// @version 1.0
// @description Attendance and leave tracking backend with role-based access for students and department heads

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT bearer token

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}

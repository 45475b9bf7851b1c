package main

import (
	"os"

	"github.com/yigit/attendance/internal/pkg/logger"
	"github.com/yigit/attendance/internal/server"
)

// @title Attendance Eligibility API
// @version 1.0
// @description Tracks per-subject attendance against the 75% eligibility threshold and projects the effect of planned leave.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

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

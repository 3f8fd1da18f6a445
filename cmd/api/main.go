package main

import (
	"os"

	"github.com/yigit/coursecatalog/internal/pkg/logger"
	"github.com/yigit/coursecatalog/internal/server"
)

// @title Course Catalog API
// @version 1.0
// @description Create and list software courses

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Details are logged inside the bootstrap functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}

package main

import (
	"os"

	"aeroclub/core/logger"
	"aeroclub/core/server"

	_ "aeroclub/docs"
)

// @title Aeroclub Scheduler API
// @version 1.0
// @description Reservation scheduler for a shared aircraft: bookings, maintenance windows, oil logs, and notifications.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @BasePath /api/v1
func main() {
	if err := server.Run(); err != nil {
		logger.Error("Main:Run", err)
		os.Exit(1)
	}
}

package main

import (
	"os"

	"work-exchange-api/core/logger"
	"work-exchange-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
		os.Exit(1)
	}
}

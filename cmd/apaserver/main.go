package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/simone-mordue/papaja"
	"github.com/simone-mordue/papaja/internal"
	"github.com/simone-mordue/papaja/internal/config"
	"github.com/simone-mordue/papaja/ui"
)

func main() {
	logger := internal.NewDefaultLogger("apaserver")

	// Optional .env for PORT and the PAPAJA_* report defaults
	_ = godotenv.Load()

	opts, err := config.FromEnv()
	if err != nil {
		logger.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	app, err := ui.NewApp(ui.Config{
		Options:  opts,
		Registry: papaja.DefaultRegistry(),
	})
	if err != nil {
		logger.Error("startup failed: %v", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port != "" && port[0] != ':' {
		port = ":" + port
	}
	if err := app.Start(port); err != nil {
		logger.Error("server failed: %v", err)
		os.Exit(1)
	}
}

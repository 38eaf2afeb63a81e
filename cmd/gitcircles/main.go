package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"gitcircles.github/internal/config"
	"gitcircles.github/internal/interfaces/cli"
	"gitcircles.github/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	logger.Init(cfg.Log.Env)

	root := cli.NewRootCommand(cfg)
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gitlab.com/hashburst.net/internal/adapter/crypto"
	batchsvc "gitlab.com/hashburst.net/internal/core/services/batch"
	batchhdl "gitlab.com/hashburst.net/internal/handlers/batch"
	http2 "gitlab.com/hashburst.net/internal/http"

	"gitlab.com/hashburst.net/internal/config"
	logger2 "gitlab.com/hashburst.net/internal/global/logger"
	"gitlab.com/hashburst.net/internal/workerpool"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting batch compute service")

	logger := logger2.Logger

	sysCfg := config.NewSystemConfig()

	ctxBg := context.Background()

	// Build the worker pool at cold start. A failed build is fatal: the
	// platform restarts the process rather than serving from a broken pool.
	pool := workerpool.New(sysCfg.WorkerPoolCfg, logger)
	if err := pool.Init(ctxBg); err != nil {
		logger.Error("Failed to initialize worker pool", "error", err)
		logger.Sync()
		os.Exit(1)
	}

	hasher := crypto.NewBcryptHasher()

	//services
	batchService := batchsvc.NewBatchService(pool, hasher, sysCfg.WorkerPoolCfg, logger)

	//server
	handler := batchhdl.NewBatchHandler(batchService, sysCfg.WorkerPoolCfg, logger)
	httServer := http2.NewServer(sysCfg.ServerConfig, handler, logger)
	if err := httServer.Init(); err != nil {
		panic(err)
	}
	httServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httServer.Stop(ctx)

	logger.Info("successfully shutdown server")
	logger.Sync()
}

// InitReader loads the environment file named by APP_ENV. The serverless
// platform injects configuration directly into the environment, so a missing
// file is only fatal when one was explicitly requested.
func InitReader() {
	environment := os.Getenv("APP_ENV")
	if environment != "" {
		if err := godotenv.Load(environment + ".env"); err != nil {
			logger2.Error("Error loading env file", "file", environment+".env", "error", err)
			os.Exit(1)
		}
		return
	}
	_ = godotenv.Load()
}

package config

import "os"

type AppConfig struct {
	DebugMode     bool
	WorkerPoolCfg *WorkerPoolConfig
	ServerConfig  *ServerConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:     os.Getenv("DEBUG_MODE") == "true",
		WorkerPoolCfg: NewWorkerPoolConfig(),
		ServerConfig:  NewServerConfig(),
	}
}

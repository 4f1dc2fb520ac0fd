package config

import "os"

type ServerConfig struct {
	Addr        string
	ServiceName string
}

func NewServerConfig() *ServerConfig {
	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return &ServerConfig{
		Addr:        addr,
		ServiceName: "batchCompute",
	}
}

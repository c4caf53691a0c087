package config

import (
	"flag"
	"os"
)

type Config struct {
	WorkerAddress     string
	GatewayAddress    string
	RestateIngressURL string
	DatabaseURI       string
}

func New() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.WorkerAddress, "a", ":9080", "worker listen address")
	flag.StringVar(&cfg.GatewayAddress, "g", ":8081", "gateway listen address")
	flag.StringVar(&cfg.RestateIngressURL, "r", "http://localhost:8080", "restate ingress URL")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI (empty uses the in-memory sample ledger)")
	flag.Parse()

	cfg.WorkerAddress = getEnv("WORKER_ADDRESS", cfg.WorkerAddress)
	cfg.GatewayAddress = getEnv("GATEWAY_ADDRESS", cfg.GatewayAddress)
	cfg.RestateIngressURL = getEnv("RESTATE_INGRESS_URL", cfg.RestateIngressURL)
	cfg.DatabaseURI = getEnv("DATABASE_URI", cfg.DatabaseURI)

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// GRPCDisabled turns off the gRPC listener when used as BADGES_GRPC_ADDR.
const GRPCDisabled = "off"

type Config struct {
	Source         string // BADGES_SOURCE (default "badges.json"; path, file://, http(s)://, s3://)
	FallbackSource string // BADGES_FALLBACK_SOURCE (optional, tried once when Source fails to fetch)
	HTTPAddr       string // BADGES_HTTP_ADDR (default ":8080")
	GRPCAddr       string // BADGES_GRPC_ADDR (default ":9090"; "off" disables)
	NATSURL        string // BADGES_NATS_URL (optional, empty = no events)
	AuthToken      string // BADGES_AUTH_TOKEN (optional, empty = auth disabled)

	LazyImages   bool          // BADGES_LAZY_IMAGES (default true)
	FetchTimeout time.Duration // BADGES_FETCH_TIMEOUT (default 30s; 0 = no timeout)

	S3Region   string // BADGES_S3_REGION (default "us-east-1")
	S3Endpoint string // BADGES_S3_ENDPOINT (custom endpoint for MinIO)
}

func Load() (*Config, error) {
	c := &Config{
		Source:         envOrDefault("BADGES_SOURCE", "badges.json"),
		FallbackSource: os.Getenv("BADGES_FALLBACK_SOURCE"),
		HTTPAddr:       envOrDefault("BADGES_HTTP_ADDR", ":8080"),
		GRPCAddr:       envOrDefault("BADGES_GRPC_ADDR", ":9090"),
		NATSURL:        os.Getenv("BADGES_NATS_URL"),
		AuthToken:      os.Getenv("BADGES_AUTH_TOKEN"),
		S3Region:       envOrDefault("BADGES_S3_REGION", "us-east-1"),
		S3Endpoint:     os.Getenv("BADGES_S3_ENDPOINT"),
	}

	lazy, err := strconv.ParseBool(envOrDefault("BADGES_LAZY_IMAGES", "true"))
	if err != nil {
		return nil, fmt.Errorf("BADGES_LAZY_IMAGES: %w", err)
	}
	c.LazyImages = lazy

	timeout, err := time.ParseDuration(envOrDefault("BADGES_FETCH_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("BADGES_FETCH_TIMEOUT: %w", err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("BADGES_FETCH_TIMEOUT must not be negative")
	}
	c.FetchTimeout = timeout

	if c.FallbackSource == c.Source {
		c.FallbackSource = ""
	}
	return c, nil
}

// GRPCEnabled reports whether a gRPC listener should be started.
func (c *Config) GRPCEnabled() bool {
	return c.GRPCAddr != "" && !strings.EqualFold(c.GRPCAddr, GRPCDisabled)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

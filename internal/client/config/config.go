package config

import (
	"time"

	"github.com/dmitrijs2005/taskpad/internal/common"
)

// Config holds runtime settings for the taskpad client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the record store gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - S3*: attachment bucket access (MinIO compatible).
//   - S3PublicURLTemplate: public link pattern with {bucket} and {key} placeholders.
//   - LogLevel: one of debug, info, warn, error.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration

	S3AccessKey         string
	S3SecretKey         string
	S3Bucket            string
	S3Region            string
	S3BaseEndpoint      string
	S3PublicURLTemplate string

	LogLevel string
}

// LoadDefaults populates c with values that match a local MinIO + server setup.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second

	c.S3AccessKey = "minioadmin"
	c.S3SecretKey = "minioadmin"
	c.S3Bucket = common.DefaultBucket
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000"
	c.S3PublicURLTemplate = "http://127.0.0.1:9000/{bucket}/{key}"

	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

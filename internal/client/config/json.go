package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/taskpad/internal/flagx"
)

// Duration accepts either a Go duration string ("3s") or integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		p, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		*d = Duration(p)
	case float64:
		*d = Duration(time.Duration(x))
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Zero fields
// leave the current value untouched.
type JsonConfig struct {
	ServerEndpointAddr  string   `json:"server_endpoint_addr"`
	OnlineCheckInterval Duration `json:"online_check_interval"`

	S3AccessKey         string `json:"s3_access_key"`
	S3SecretKey         string `json:"s3_secret_key"`
	S3Bucket            string `json:"s3_bucket"`
	S3Region            string `json:"s3_region"`
	S3BaseEndpoint      string `json:"s3_base_endpoint"`
	S3PublicURLTemplate string `json:"s3_public_url_template"`

	LogLevel string `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIfNotEmpty(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	if jc.OnlineCheckInterval > 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval)
	}
	setIfNotEmpty(&cfg.S3AccessKey, jc.S3AccessKey)
	setIfNotEmpty(&cfg.S3SecretKey, jc.S3SecretKey)
	setIfNotEmpty(&cfg.S3Bucket, jc.S3Bucket)
	setIfNotEmpty(&cfg.S3Region, jc.S3Region)
	setIfNotEmpty(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setIfNotEmpty(&cfg.S3PublicURLTemplate, jc.S3PublicURLTemplate)
	setIfNotEmpty(&cfg.LogLevel, jc.LogLevel)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

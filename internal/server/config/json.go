package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/taskpad/internal/flagx"
)

// JsonConfig mirrors Config for JSON unmarshalling. Empty fields leave the
// current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC string `json:"endpoint_addr_grpc"`
	DatabaseDriver   string `json:"database_driver"`
	DatabaseDSN      string `json:"database_dsn"`
	LogLevel         string `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config (or
// $TASKPAD_CONFIG). It panics on unreadable or malformed files.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIfNotEmpty(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIfNotEmpty(&config.DatabaseDriver, c.DatabaseDriver)
	setIfNotEmpty(&config.DatabaseDSN, c.DatabaseDSN)
	setIfNotEmpty(&config.LogLevel, c.LogLevel)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

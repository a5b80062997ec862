package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/useraccounts/internal/flagx"
	"github.com/dmitrijs2005/useraccounts/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// strings such as "1h" or integer nanoseconds. Absent fields keep the value
// already in Config.
type JsonConfig struct {
	EndpointAddrHTTP        *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC        *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN             *string         `json:"database_dsn"`
	SecretKey               *string         `json:"secret_key"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	PasswordHashCost        *int            `json:"password_hash_cost"`
	CookieName              *string         `json:"cookie_name"`
}

// parseJson overlays config with the file named by -c/-config. Nothing
// happens when no file is given; unreadable or invalid files panic.
func parseJson(config *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.PasswordHashCost, c.PasswordHashCost)
	setIf(&config.CookieName, c.CookieName)
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

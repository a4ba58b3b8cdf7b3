package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Service *svcConfig
}

type svcConfig struct {
	CSPURL      string        `envconfig:"SDDCINFO_CSP_URL" default:"https://console.cloud.vmware.com"`
	VMCURL      string        `envconfig:"SDDCINFO_VMC_URL" default:"https://vmc.vmware.com"`
	HTTPTimeout time.Duration `envconfig:"SDDCINFO_HTTP_TIMEOUT" default:"60s"`
	LogLevel    string        `envconfig:"SDDCINFO_LOG_LEVEL" default:"warn"`
}

// New reads the SDDCINFO_* environment, after loading a .env file from the
// working directory when there is one.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_DEBUG_JSON dumps every response body
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours     bool `envconfig:"E2E_COLOURS" default:"true"`
	Partitions  int  `envconfig:"E2E_PARTITIONS" default:"4"`
	Conditional bool `envconfig:"E2E_CONDITIONAL_POINTER" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

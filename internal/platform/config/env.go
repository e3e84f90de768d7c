package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable pmct reads. Struct tags
// name variables without it.
const EnvPrefix = "PMCT_"

// ParseEnv fills target from PMCT_ environment variables.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment (prefix %s): %w", EnvPrefix, err)
	}
	return nil
}

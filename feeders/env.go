package feeders

import "github.com/golobby/config/v3/pkg/feeder"

// EnvFeeder fills struct fields tagged `env:"NAME"` from environment variables,
// e.g. `env:"FEMGLUE_PRECISION"`. Unset variables leave the field untouched.
type EnvFeeder = feeder.Env

// NewEnvFeeder creates a new EnvFeeder that reads from environment variables
func NewEnvFeeder() EnvFeeder {
	return EnvFeeder{}
}

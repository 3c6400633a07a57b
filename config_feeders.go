package femglue

import (
	"github.com/golobby/config/v3"

	"github.com/GoCodeAlone/femglue/feeders"
)

// ConfigFeeders are applied by Current after the static config file.
var ConfigFeeders = []Feeder{
	feeders.NewEnvFeeder(),
}

// Feeder aliases
type Feeder = config.Feeder

// ComplexFeeder extends the basic Feeder interface with keyed lookups into a config file
type ComplexFeeder interface {
	Feeder
	FeedKey(string, interface{}) error
}

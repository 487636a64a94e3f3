package appconf

import "strings"

// Environment is the operating mode of the service.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag value to an Environment. Anything
// unrecognized is treated as development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// Config holds the settings of the HTTP service. The GTFS sources are
// configured separately through gtfs.Config.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	RateLimit int
	LogLevel  string
	LogFormat string
}

// Default returns the settings used when neither flags nor a file override them.
func Default() Config {
	return Config{
		Port:      4000,
		Env:       Development,
		RateLimit: 100,
		LogLevel:  "info",
		LogFormat: "json",
	}
}

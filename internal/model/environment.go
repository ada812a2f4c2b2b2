package model

// Environment names the deployment stage.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

// ParseEnvironment maps a configured name onto an Environment, defaulting
// to development.
func ParseEnvironment(name string) Environment {
	switch Environment(name) {
	case EnvironmentStaging, EnvironmentProduction:
		return Environment(name)
	default:
		return EnvironmentDevelopment
	}
}

// GinMode is the gin mode implied by the environment.
func (e Environment) GinMode() string {
	if e == EnvironmentProduction {
		return "release"
	}
	return "debug"
}

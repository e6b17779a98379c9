package core

import "strings"

// Environment selects deployment-dependent behaviour such as the log format.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

var environmentAliases = map[string]Environment{
	"dev":         Development,
	"development": Development,
	"local":       Development,
	"stage":       Staging,
	"staging":     Staging,
	"test":        Testing,
	"testing":     Testing,
	"ci":          Testing,
	"prod":        Production,
	"production":  Production,
}

func (e Environment) String() string {
	return string(e)
}

// Deployed reports whether logs go to an aggregator and must be JSON.
func (e Environment) Deployed() bool {
	return e == Production || e == Staging
}

// ParseEnvironment accepts the canonical names and their short forms in any
// case. Unknown values map to Development with ok set to false.
func ParseEnvironment(v string) (env Environment, ok bool) {
	env, ok = environmentAliases[strings.ToLower(strings.TrimSpace(v))]
	if !ok {
		return Development, false
	}
	return env, true
}

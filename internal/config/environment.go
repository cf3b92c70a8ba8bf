package config

import "strings"

type Environment int32

const (
	UNDEFINED_ENV Environment = iota
	LOCAL_ENV
	DEV_ENV
	UAT_ENV
	PROD_ENV
)

var environmentNames = map[Environment]string{
	LOCAL_ENV: "local",
	DEV_ENV:   "dev",
	UAT_ENV:   "uat",
	PROD_ENV:  "prod",
}

// backend functions only exist in Dev, Uat and Prod flavours, local runs hit Dev.
var environmentResourceSuffix = map[Environment]string{
	LOCAL_ENV: "Dev",
	DEV_ENV:   "Dev",
	UAT_ENV:   "Uat",
	PROD_ENV:  "Prod",
}

func StringToEnvironment(s string) Environment {
	s = strings.ToLower(strings.TrimSpace(s))
	for env, name := range environmentNames {
		if name == s {
			return env
		}
	}
	return UNDEFINED_ENV
}

func (e Environment) String() string {
	if name, ok := environmentNames[e]; ok {
		return name
	}
	return "UNDEFINED"
}

// ResourceSuffix is appended to backoffice function names, e.g. BanksLambdaProd.
func (e Environment) ResourceSuffix() string {
	if suffix, ok := environmentResourceSuffix[e]; ok {
		return suffix
	}
	return environmentResourceSuffix[DEV_ENV]
}

// Environment returns the parsed app environment.
func (c Config) Environment() Environment {
	return StringToEnvironment(c.App.Env)
}

package config

import "time"

type Config interface {
	EnvConfig
}

type EnvConfig interface {
	GetAppName() string
	GetAuthBaseURL() string
	GetAdminBaseURL() string
	GetAdminKey() string
	GetHTTPTimeout() time.Duration
	GetCredentialsFile() string
	GetCredentialsPassphrase() string
	GetClientVersion() string
	GetClientPlatform() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}

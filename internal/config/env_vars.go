package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	appNameVar         = "APP_NAME"
	authBaseURLVar     = "AUTH_BASE_URL"
	adminBaseURLVar    = "ADMIN_BASE_URL"
	adminKeyVar        = "ADMIN_KEY"
	httpTimeoutVar     = "HTTP_TIMEOUT_SECONDS"
	credentialsFileVar = "CREDENTIALS_FILE"
	passphraseVar      = "CREDENTIALS_PASSPHRASE"
	clientVersionVar   = "CLIENT_VERSION"
	clientPlatformVar  = "CLIENT_PLATFORM"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Go Auth Client")
}

// GetAuthBaseURL returns the base URL of the authentication service
// (e.g., "https://auth.example.com")
func (EnvVars) GetAuthBaseURL() string {
	return GetEnv(authBaseURLVar, "http://localhost:8000")
}

// GetAdminBaseURL returns the base URL of the system-admin monitoring service
func (EnvVars) GetAdminBaseURL() string {
	return GetEnv(adminBaseURLVar, "http://localhost:8001")
}

func (EnvVars) GetAdminKey() string {
	return GetEnv(adminKeyVar, "")
}

func (EnvVars) GetHTTPTimeout() time.Duration {
	seconds, err := strconv.Atoi(GetEnv(httpTimeoutVar, "10"))
	if err != nil || seconds <= 0 {
		seconds = 10
	}
	return time.Duration(seconds) * time.Second
}

// GetCredentialsFile returns the path where the credential pair is persisted.
// Defaults to .auth-credentials.json in the user's home directory.
func (EnvVars) GetCredentialsFile() string {
	if path := os.Getenv(credentialsFileVar); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".auth-credentials.json"
	}
	return filepath.Join(home, ".auth-credentials.json")
}

// GetCredentialsPassphrase returns the passphrase for the encrypted credential
// store. Empty means the plain file store is used.
func (EnvVars) GetCredentialsPassphrase() string {
	return GetEnv(passphraseVar, "")
}

func (EnvVars) GetClientVersion() string {
	return GetEnv(clientVersionVar, "1.0.0")
}

func (EnvVars) GetClientPlatform() string {
	return GetEnv(clientPlatformVar, "go")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

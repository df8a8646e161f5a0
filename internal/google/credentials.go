package google

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables holding the startup secrets
const (
	EnvClientID     = "GOOGLE_CLIENT_ID"
	EnvClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvRefreshToken = "GOOGLE_REFRESH_TOKEN"
)

// Credentials are the secrets needed to mint access tokens
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// MissingCredentialsError lists the environment variables that were empty
type MissingCredentialsError struct {
	Missing []string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("missing required Google credentials: %s must be set", strings.Join(e.Missing, ", "))
}

// CredentialsFromEnv reads the credentials from the environment. Values are
// trimmed; it does not validate them.
func CredentialsFromEnv() Credentials {
	return Credentials{
		ClientID:     strings.TrimSpace(os.Getenv(EnvClientID)),
		ClientSecret: strings.TrimSpace(os.Getenv(EnvClientSecret)),
		RefreshToken: strings.TrimSpace(os.Getenv(EnvRefreshToken)),
	}
}

// Validate returns a *MissingCredentialsError naming every empty secret
func (c Credentials) Validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if c.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if c.RefreshToken == "" {
		missing = append(missing, EnvRefreshToken)
	}
	if len(missing) > 0 {
		return &MissingCredentialsError{Missing: missing}
	}
	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"
)

// ProjectEnv selects which Stytch environment the project lives in.
type ProjectEnv string

const (
	// ProjectEnvTest targets the Stytch test environment.
	ProjectEnvTest ProjectEnv = "test"
	// ProjectEnvLive targets the Stytch live environment.
	ProjectEnvLive ProjectEnv = "live"
)

// UnmarshalText implements encoding.TextUnmarshaler for ProjectEnv.
func (p *ProjectEnv) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "test", "live":
		*p = ProjectEnv(v)
		return nil
	default:
		return fmt.Errorf("invalid ProjectEnv: %q (valid options: test, live)", v)
	}
}

// StytchConfig contains the B2B auth provider configuration.
type StytchConfig struct {
	ProjectID   string     `env:"PROJECT_ID"`
	Secret      string     `env:"SECRET"`
	PublicToken string     `env:"PUBLIC_TOKEN"`
	ProjectEnv  ProjectEnv `env:"PROJECT_ENV" envDefault:"test"`

	// BaseURL overrides the provider API base URL. Leave empty to derive
	// it from ProjectEnv. Tests point this at a fake provider.
	BaseURL string `env:"BASE_URL"`

	// Timeout bounds every provider call. Calls are fire-once: there is
	// no retry policy, a failed call surfaces to the request that made it.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize derives the API base URL from the project environment when no
// explicit override is configured.
func (s *StytchConfig) Sanitize() {
	if s.BaseURL == "" {
		if s.ProjectEnv == ProjectEnvLive {
			s.BaseURL = "https://api.stytch.com"
		} else {
			s.BaseURL = "https://test.stytch.com"
		}
	}
	s.BaseURL = strings.TrimSuffix(s.BaseURL, "/")
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}
}

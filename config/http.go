package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":3000"`

	// AppURL is the origin of the dashboard client (e.g. "http://localhost:4321").
	// Post-auth redirects and CORS are built against it.
	AppURL string `env:"APP_URL" envDefault:"http://localhost:4321"`

	// CookieDomain is the domain for auth cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// EmailSendPerMinute caps discovery magic-link sends per client IP.
	EmailSendPerMinute int `env:"HTTP_EMAIL_SEND_PER_MINUTE" envDefault:"5"`

	// TrustProxy keys rate limiting on the X-Forwarded-For hop appended by
	// a fronting proxy. Enable only when one is actually in front.
	TrustProxy bool `env:"HTTP_TRUST_PROXY" envDefault:"false"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.EmailSendPerMinute < 1 {
		h.EmailSendPerMinute = 1
	}
}

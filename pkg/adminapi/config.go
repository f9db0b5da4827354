package adminapi

import (
	"fmt"
	"net/url"
	"time"
)

// Config represents the configuration for the admin REST API client
type Config struct {
	// BaseURL is the API root, e.g. https://api.example.com/api (without trailing slash)
	BaseURL string

	// Timeout bounds a single request; zero means 30s
	Timeout time.Duration

	// UserAgent is sent with every request when set
	UserAgent string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base URL %q is not absolute", ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}
	return nil
}

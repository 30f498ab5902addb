package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	EnvSubscriptionKey = "SUBSCRIPTION_KEY"
	EnvEndpoint        = "ENDPOINT"

	DefaultPollInterval = time.Second
)

// Config holds everything needed to run a Read job. It is built once at
// startup and passed explicitly to the client and runner.
type Config struct {
	SubscriptionKey string
	Endpoint        string

	PollInterval time.Duration
	// MaxAttempts bounds the number of result fetches; 0 polls until a
	// terminal status is reported.
	MaxAttempts int
	// Timeout bounds the whole job; 0 means no deadline.
	Timeout time.Duration
	// RateLimit caps API calls per second; 0 disables limiting.
	RateLimit float64
}

// FromEnv reads the credentials from the process environment
func FromEnv() Config {
	return Config{
		SubscriptionKey: os.Getenv(EnvSubscriptionKey),
		Endpoint:        os.Getenv(EnvEndpoint),
		PollInterval:    DefaultPollInterval,
	}
}

// Validate reports missing credentials and invalid polling settings
func (c Config) Validate() error {
	var missing []string
	if c.SubscriptionKey == "" {
		missing = append(missing, EnvSubscriptionKey)
	}
	if c.Endpoint == "" {
		missing = append(missing, EnvEndpoint)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s environment variables must be set", strings.Join(missing, " and "))
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max attempts must not be negative, got %d", c.MaxAttempts)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %g", c.RateLimit)
	}

	return nil
}

package config

import (
	"strings"
	"testing"
	"time"
)

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvSubscriptionKey, "test-key")
	t.Setenv(EnvEndpoint, "https://test.cognitiveservices.azure.com")

	c := FromEnv()

	if c.SubscriptionKey != "test-key" {
		t.Errorf("Expected subscription key 'test-key', got '%s'", c.SubscriptionKey)
	}
	if c.Endpoint != "https://test.cognitiveservices.azure.com" {
		t.Errorf("Unexpected endpoint '%s'", c.Endpoint)
	}
	if c.PollInterval != time.Second {
		t.Errorf("Expected default poll interval 1s, got %s", c.PollInterval)
	}
	if c.MaxAttempts != 0 {
		t.Errorf("Expected unlimited attempts by default, got %d", c.MaxAttempts)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		SubscriptionKey: "test-key",
		Endpoint:        "https://test.cognitiveservices.azure.com",
		PollInterval:    time.Second,
	}

	tests := []struct {
		name          string
		modify        func(*Config)
		expectError   bool
		errorContains string
	}{
		{
			name:        "valid config",
			modify:      func(c *Config) {},
			expectError: false,
		},
		{
			name:          "missing subscription key",
			modify:        func(c *Config) { c.SubscriptionKey = "" },
			expectError:   true,
			errorContains: "SUBSCRIPTION_KEY",
		},
		{
			name:          "missing endpoint",
			modify:        func(c *Config) { c.Endpoint = "" },
			expectError:   true,
			errorContains: "ENDPOINT",
		},
		{
			name: "both missing",
			modify: func(c *Config) {
				c.SubscriptionKey = ""
				c.Endpoint = ""
			},
			expectError:   true,
			errorContains: "SUBSCRIPTION_KEY and ENDPOINT",
		},
		{
			name:          "zero poll interval",
			modify:        func(c *Config) { c.PollInterval = 0 },
			expectError:   true,
			errorContains: "poll interval",
		},
		{
			name:          "negative max attempts",
			modify:        func(c *Config) { c.MaxAttempts = -1 },
			expectError:   true,
			errorContains: "max attempts",
		},
		{
			name:          "negative timeout",
			modify:        func(c *Config) { c.Timeout = -time.Second },
			expectError:   true,
			errorContains: "timeout",
		},
		{
			name:          "negative rate limit",
			modify:        func(c *Config) { c.RateLimit = -1 },
			expectError:   true,
			errorContains: "rate limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.modify(&c)

			err := c.Validate()

			if tt.expectError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
			if tt.expectError && err != nil && !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("Expected error to contain '%s', got: %v", tt.errorContains, err)
			}
		})
	}
}

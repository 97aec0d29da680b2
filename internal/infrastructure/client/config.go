package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// maxResponseSize is the maximum allowed response size from a collaborator (4MB)
const maxResponseSize = 4 * 1024 * 1024

// ServiceConfig holds the connection settings for one remote collaborator
type ServiceConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Validate checks the service configuration
func (c *ServiceConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL: %q", c.BaseURL)
	}
	if c.TimeoutSeconds <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

// Timeout returns the configured timeout as a duration
func (c *ServiceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ParseDecimal parses a decimal from a JSON number or string field.
// Malformed values degrade to zero; numeric parse failures from the
// collaborators are recovered locally, never surfaced.
func ParseDecimal(raw json.Number) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

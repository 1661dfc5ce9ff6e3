package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if !strings.HasPrefix(c.Auth.PasswordHash, "$2") {
		return fmt.Errorf("auth.password_hash must be a bcrypt hash")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}

	if c.Shadow.WindowMinutes <= 0 {
		return fmt.Errorf("shadow.window_minutes must be > 0 (got %d)", c.Shadow.WindowMinutes)
	}
	if c.Expander.MaxWindowDays <= 0 {
		return fmt.Errorf("expander.max_window_days must be > 0 (got %d)", c.Expander.MaxWindowDays)
	}

	if err := c.Scrapers.validate(); err != nil {
		return fmt.Errorf("scrapers: %w", err)
	}

	return nil
}

func (c *ScrapersConfig) validate() error {
	if !c.LeetCodeEnabled() && !c.CodeforcesEnabled() {
		return nil
	}
	if c.PollInterval < time.Minute {
		return fmt.Errorf("poll_interval must be at least 1m (got %v)", c.PollInterval)
	}
	if c.SubmissionPageSize < 1 {
		return fmt.Errorf("submission_page_size must be >= 1 (got %d)", c.SubmissionPageSize)
	}
	if c.TZOffsetMinutes < -14*60 || c.TZOffsetMinutes > 14*60 {
		return fmt.Errorf("tz_offset_minutes must be within ±840 (got %d)", c.TZOffsetMinutes)
	}
	return nil
}

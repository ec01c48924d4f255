package config

import (
	"fmt"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Audit.validate(); err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	if err := c.Dashboard.validate(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit: values must be >= 0")
	}

	return nil
}

func (a *AuditConfig) validate() error {
	if a.DefaultPageLimit <= 0 {
		return fmt.Errorf("default_page_limit must be > 0 (got %d)", a.DefaultPageLimit)
	}
	if a.MaxPageLimit < a.DefaultPageLimit {
		return fmt.Errorf("max_page_limit (%d) must be >= default_page_limit (%d)", a.MaxPageLimit, a.DefaultPageLimit)
	}
	if a.BulkMaxItems <= 0 {
		return fmt.Errorf("bulk_max_items must be > 0 (got %d)", a.BulkMaxItems)
	}
	return nil
}

func (d *DashboardConfig) validate() error {
	if d.DeadlineWindowDays < 0 {
		return fmt.Errorf("deadline_window_days must be >= 0 (got %d)", d.DeadlineWindowDays)
	}
	if d.TopDomains < 0 {
		return fmt.Errorf("top_domains must be >= 0 (got %d)", d.TopDomains)
	}

	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", d.Timezone, err)
	}
	d.Location = loc

	return nil
}

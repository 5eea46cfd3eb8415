package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend REST API
	BackendBaseURL string
	BackendTimeout time.Duration

	// Backend selection
	DataBackend string

	// Record stores
	RefreshTTL time.Duration

	// Views
	WeekStart time.Weekday

	// Messaging handoff
	WhatsAppDomain string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8082"),

		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8080/api"),
		BackendTimeout: getEnvDuration("BACKEND_TIMEOUT", 10*time.Second),

		DataBackend: getEnv("DATA_BACKEND", "memory"),

		RefreshTTL: getEnvDuration("REFRESH_TTL", 30*time.Second),

		WeekStart: getEnvWeekday("WEEK_START", time.Sunday),

		WhatsAppDomain: getEnv("WHATSAPP_DOMAIN", "wa.me"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"memory", "rest"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate backend URL if backend is rest
	if c.DataBackend == "rest" {
		if c.BackendBaseURL == "" {
			errors = append(errors, "backend base URL cannot be empty when using rest backend")
		} else if parsedURL, err := url.Parse(c.BackendBaseURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid backend base URL '%s': %v", c.BackendBaseURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid backend base URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}

	if c.BackendTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid backend timeout %v: must be at least 1 second", c.BackendTimeout))
	} else if c.BackendTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid backend timeout %v: must be at most 1 minute", c.BackendTimeout))
	}

	if c.RefreshTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid refresh TTL %v: must be at least 1 second", c.RefreshTTL))
	} else if c.RefreshTTL > time.Hour {
		errors = append(errors, fmt.Sprintf("invalid refresh TTL %v: must be at most 1 hour", c.RefreshTTL))
	}

	if c.WhatsAppDomain == "" {
		errors = append(errors, "WhatsApp domain cannot be empty")
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvWeekday(key string, defaultValue time.Weekday) time.Weekday {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	days := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
	if d, ok := days[value]; ok {
		return d
	}
	return defaultValue
}

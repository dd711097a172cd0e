// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by the config command and the MCP-independent CLI.
// Keys are dotted YAML paths (e.g., "fetch.max_body"). List values are
// read and written as comma-separated strings.
//
// Pointers are used for numeric fields so "not set" (nil) can be told
// apart from an explicit value; defaults apply only to unset fields.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"vault.paths",
		"modules.disabled",
		"websearch.command", "websearch.fallback_model",
		"fetch.user_agent", "fetch.max_body",
		"limits.max_path", "limits.max_content",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// SplitList splits a comma-separated value, dropping blanks.
func SplitList(value string) []string {
	var out []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "vault.paths":
		return strings.Join(c.VaultPaths(), ","), nil
	case "modules.disabled":
		return strings.Join(c.DisabledModules(), ","), nil
	case "websearch.command":
		return c.WebSearchCommand(), nil
	case "websearch.fallback_model":
		return c.FallbackModel(), nil
	case "fetch.user_agent":
		return c.UserAgent(), nil
	case "fetch.max_body":
		return strconv.FormatInt(c.MaxBody(), 10), nil
	case "limits.max_path":
		return strconv.Itoa(c.MaxPath()), nil
	case "limits.max_content":
		return strconv.FormatInt(c.MaxContent(), 10), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "vault.paths":
		c.Vault.Paths = SplitList(value)
	case "modules.disabled":
		c.Modules.Disabled = SplitList(value)
	case "websearch.command":
		c.WebSearch.Command = strings.TrimSpace(value)
	case "websearch.fallback_model":
		c.WebSearch.FallbackModel = strings.TrimSpace(value)
	case "fetch.user_agent":
		c.Fetch.UserAgent = value
	case "fetch.max_body":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < MinMaxBody || n > MaxMaxBody {
			return fmt.Errorf("%w: fetch.max_body must be an integer between %d and %d", ErrInvalidValue, MinMaxBody, MaxMaxBody)
		}
		c.Fetch.MaxBody = &n
	case "limits.max_path":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_path must be a positive integer", ErrInvalidValue)
		}
		c.Limits.MaxPath = &n
	case "limits.max_content":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_content must be a positive integer", ErrInvalidValue)
		}
		c.Limits.MaxContent = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		out[k], _ = c.Get(k)
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "vault.paths":
		return len(c.Vault.Paths) > 0
	case "modules.disabled":
		return len(c.Modules.Disabled) > 0
	case "websearch.command":
		return c.WebSearch.Command != ""
	case "websearch.fallback_model":
		return c.WebSearch.FallbackModel != ""
	case "fetch.user_agent":
		return c.Fetch.UserAgent != ""
	case "fetch.max_body":
		return c.Fetch.MaxBody != nil
	case "limits.max_path":
		return c.Limits.MaxPath != nil
	case "limits.max_content":
		return c.Limits.MaxContent != nil
	default:
		return false
	}
}

// Package config holds the chm runtime configuration as assembled from
// flags, CHM_* environment variables and an optional YAML file.
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dm/chm-go/internal/client"
	"github.com/dm/chm-go/internal/model"
)

// Output formats accepted by `chm check`.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// LogConfig configures the process logger.
type LogConfig struct {
	Level string
	File  string
}

// Config is the resolved chm configuration.
type Config struct {
	ConfigFile string

	Server   string
	Username string
	Password string
	Insecure bool
	Timeout  time.Duration

	Log LogConfig

	Cluster      string
	Token        string
	YarnApps     int
	Refresh      time.Duration
	DiscardStale bool
	MetricsAddr  string
	Output       string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server:  "http://localhost:8080",
		Timeout: 10 * time.Second,
		Log: LogConfig{
			Level: "info",
		},
		Output: OutputText,
	}
}

// Load reads every known key out of v.
func Load(v *viper.Viper) *Config {
	return &Config{
		ConfigFile: v.GetString("config"),
		Server:     v.GetString("server"),
		Username:   v.GetString("username"),
		Password:   v.GetString("password"),
		Insecure:   v.GetBool("insecure"),
		Timeout:    v.GetDuration("timeout"),
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
		Cluster:      v.GetString("cluster"),
		Token:        v.GetString("token"),
		YarnApps:     v.GetInt("yarn_apps"),
		Refresh:      v.GetDuration("refresh"),
		DiscardStale: v.GetBool("discard_stale"),
		MetricsAddr:  v.GetString("metrics_addr"),
		Output:       v.GetString("output"),
	}
}

// Validate checks the values shared by every command.
func (c *Config) Validate() error {
	if _, _, _, err := ParseServerURL(c.Server); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Refresh < 0 {
		return fmt.Errorf("refresh must not be negative, got %s", c.Refresh)
	}
	if c.YarnApps < 0 {
		return fmt.Errorf("yarn-apps must not be negative, got %d", c.YarnApps)
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("unsupported output %q (must be %s or %s)", c.Output, OutputText, OutputJSON)
	}
	if (c.Cluster == "") != (c.Token == "") {
		return fmt.Errorf("cluster and token must be given together")
	}
	return nil
}

// HealthToken returns the configured token, or nil when none was given.
func (c *Config) HealthToken() *model.HealthToken {
	if c.Cluster == "" && c.Token == "" {
		return nil
	}
	return &model.HealthToken{ClusterName: c.Cluster, Token: c.Token}
}

// ClientConfig builds the backend client settings. Explicit username and
// password take precedence over credentials embedded in the server URL.
func (c *Config) ClientConfig() (client.ClientConfig, error) {
	baseURL, user, pass, err := ParseServerURL(c.Server)
	if err != nil {
		return client.ClientConfig{}, err
	}
	if c.Username != "" {
		user = c.Username
	}
	if c.Password != "" {
		pass = c.Password
	}
	return client.ClientConfig{
		BaseURL:            baseURL,
		Username:           user,
		Password:           pass,
		InsecureSkipVerify: c.Insecure,
		RequestTimeout:     c.Timeout,
	}, nil
}

// ParseServerURL parses a backend URL and returns the base URL (without
// credentials, query, fragment or trailing slash), username, and password.
func ParseServerURL(raw string) (baseURL, username, password string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", "", fmt.Errorf("unsupported scheme %q (must be http or https)", u.Scheme)
	}

	if u.Hostname() == "" {
		return "", "", "", fmt.Errorf("invalid URL %q: host is required", raw)
	}

	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > 65535 {
			return "", "", "", fmt.Errorf("invalid URL %q: port %q out of range", raw, p)
		}
	}

	if u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
		u.User = nil
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""

	return strings.TrimRight(u.String(), "/"), username, password, nil
}

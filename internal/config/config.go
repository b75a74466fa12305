package config

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abl030/loki-mcp/internal/naming"
	"github.com/abl030/loki-mcp/internal/toolfilter"
)

// EnvPrefix is prepended to the upper-cased key to form the environment
// variable name (e.g., "read_only" -> "LOKI_READ_ONLY").
const EnvPrefix = "LOKI_"

// Defaults.
const (
	DefaultURL     = "http://localhost:3100"
	DefaultTimeout = 30 * time.Second
)

// Config is the runtime configuration of the tool server. It is resolved once
// at startup and never modified afterwards.
type Config struct {
	URL       string        `yaml:"url"`
	Modules   []string      `yaml:"modules"` // Empty enables every module
	ReadOnly  bool          `yaml:"read_only"`
	VerifySSL bool          `yaml:"verify_ssl"`
	Timeout   time.Duration `yaml:"timeout"`
	TenantID  string        `yaml:"tenant_id"` // Sent as X-Scope-OrgID
	RateLimit float64       `yaml:"rate_limit"` // Requests per second, 0 disables

	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Token    string `yaml:"token"`

	OAuthTokenURL     string   `yaml:"oauth_token_url"`
	OAuthClientID     string   `yaml:"oauth_client_id"`
	OAuthClientSecret string   `yaml:"oauth_client_secret"`
	OAuthScopes       []string `yaml:"oauth_scopes"`

	GoogleCredentials string `yaml:"google_credentials"` // Service account key file
}

// Auth methods reported by AuthMethod.
const (
	AuthNone   = "none"
	AuthBasic  = "basic"
	AuthBearer = "bearer"
	AuthOAuth2 = "oauth2"
	AuthGoogle = "google"
)

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		URL:       DefaultURL,
		VerifySSL: true,
		Timeout:   DefaultTimeout,
	}
}

// setters maps every configuration key to the function applying a textual
// value to it. The same keys serve the environment and --set.
var setters = map[string]func(c *Config, v string) error{
	"url":       func(c *Config, v string) error { c.URL = v; return nil },
	"modules":   func(c *Config, v string) error { c.Modules = toolfilter.ParseToolList(v); return nil },
	"read_only": func(c *Config, v string) error { return parseBool(&c.ReadOnly, v) },
	"verify_ssl": func(c *Config, v string) error {
		return parseBool(&c.VerifySSL, v)
	},
	"timeout": func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Timeout = d
		return nil
	},
	"tenant_id": func(c *Config, v string) error { c.TenantID = v; return nil },
	"rate_limit": func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		c.RateLimit = f
		return nil
	},
	"username":            func(c *Config, v string) error { c.Username = v; return nil },
	"password":            func(c *Config, v string) error { c.Password = v; return nil },
	"token":               func(c *Config, v string) error { c.Token = v; return nil },
	"oauth_token_url":     func(c *Config, v string) error { c.OAuthTokenURL = v; return nil },
	"oauth_client_id":     func(c *Config, v string) error { c.OAuthClientID = v; return nil },
	"oauth_client_secret": func(c *Config, v string) error { c.OAuthClientSecret = v; return nil },
	"oauth_scopes":        func(c *Config, v string) error { c.OAuthScopes = toolfilter.ParseToolList(v); return nil },
	"google_credentials":  func(c *Config, v string) error { c.GoogleCredentials = v; return nil },
}

// Keys returns every configuration key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnvName returns the environment variable of key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

func parseBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

// Load resolves the configuration: defaults, then the YAML file at path (if
// path is not empty), then the environment read through lookup (os.LookupEnv
// when nil), then the --set entries. The result is validated.
func Load(path string, lookup LookupFunc, sets []string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing config: %w", err)
		}
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range Keys() {
		v, ok := lookup(EnvName(key))
		if !ok || v == "" {
			continue
		}
		if err := setters[key](cfg, v); err != nil {
			return nil, fmt.Errorf("config: invalid %s %q: %w", EnvName(key), v, err)
		}
	}

	overrides, err := ParseSetEntries(sets)
	if err != nil {
		return nil, err
	}
	if err := cfg.apply(overrides); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseSetEntries parses --set key=value entries. Each entry is split on the
// first '='. An error is returned for entries missing '=', having an empty
// key or naming an unknown key.
func ParseSetEntries(entries []string) (map[string]string, error) {
	params := make(map[string]string, len(entries))
	for _, entry := range entries {
		idx := strings.Index(entry, "=")
		if idx < 0 {
			return nil, fmt.Errorf("config: invalid --set %q: expected key=value", entry)
		}
		key := strings.TrimSpace(entry[:idx])
		if key == "" {
			return nil, fmt.Errorf("config: invalid --set %q: empty key", entry)
		}
		if _, ok := setters[key]; !ok {
			if err := toolfilter.CheckNames("key", []string{key}, Keys()); err != nil {
				return nil, fmt.Errorf("config: invalid --set %q: %w", entry, err)
			}
		}
		params[key] = entry[idx+1:]
	}
	return params, nil
}

func (c *Config) apply(overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := setters[k](c, overrides[k]); err != nil {
			return fmt.Errorf("config: invalid --set %s=%q: %w", k, overrides[k], err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: url %q must be an absolute http(s) URL", c.URL)
	}
	c.URL = strings.TrimRight(c.URL, "/")

	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config: rate_limit must not be negative, got %g", c.RateLimit)
	}

	if err := toolfilter.CheckNames("module", c.Modules, naming.Modules); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if (c.Username == "") != (c.Password == "") {
		return fmt.Errorf("config: username and password must be set together")
	}
	oauth := c.OAuthTokenURL != "" || c.OAuthClientID != "" || c.OAuthClientSecret != ""
	if oauth && (c.OAuthTokenURL == "" || c.OAuthClientID == "" || c.OAuthClientSecret == "") {
		return fmt.Errorf("config: oauth_token_url, oauth_client_id and oauth_client_secret must be set together")
	}

	var methods []string
	if c.Username != "" {
		methods = append(methods, AuthBasic)
	}
	if c.Token != "" {
		methods = append(methods, AuthBearer)
	}
	if oauth {
		methods = append(methods, AuthOAuth2)
	}
	if c.GoogleCredentials != "" {
		methods = append(methods, AuthGoogle)
	}
	if len(methods) > 1 {
		return fmt.Errorf("config: conflicting auth methods configured: %s", strings.Join(methods, ", "))
	}
	return nil
}

// AuthMethod reports which backend authentication the configuration selects.
func (c *Config) AuthMethod() string {
	switch {
	case c.Username != "":
		return AuthBasic
	case c.Token != "":
		return AuthBearer
	case c.OAuthTokenURL != "":
		return AuthOAuth2
	case c.GoogleCredentials != "":
		return AuthGoogle
	default:
		return AuthNone
	}
}

// ModuleEnabled reports whether module is enabled. An empty module list
// enables every module.
func (c *Config) ModuleEnabled(module string) bool {
	if len(c.Modules) == 0 {
		return true
	}
	for _, m := range c.Modules {
		if m == module {
			return true
		}
	}
	return false
}

// EnabledModules returns the enabled modules in fixed module order.
func (c *Config) EnabledModules() []string {
	var enabled []string
	for _, m := range naming.Modules {
		if c.ModuleEnabled(m) {
			enabled = append(enabled, m)
		}
	}
	return enabled
}

// Redacted returns a copy safe to log.
func (c *Config) Redacted() Config {
	r := *c
	r.Modules = append([]string(nil), c.Modules...)
	r.OAuthScopes = append([]string(nil), c.OAuthScopes...)
	for _, s := range []*string{&r.Password, &r.Token, &r.OAuthClientSecret} {
		if *s != "" {
			*s = "***"
		}
	}
	return r
}

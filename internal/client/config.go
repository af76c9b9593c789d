package client

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/client-go/util/homedir"
	"sigs.k8s.io/yaml"
)

const (
	// TestRootDirEnvKey relocates every config file path under a test root.
	TestRootDirEnvKey = "PROFIT_TEST_ROOT_DIR"

	defaultTimeout = 30 * time.Second
)

// Config is the content of the profit CLI client config file.
type Config struct {
	Service Service `json:"service"`

	testRootDir string `json:"-"`
}

// Service locates the profit-planner API server.
type Service struct {
	// Server is the URL of the API server (the part before /api/v1/...).
	Server string `json:"server"`
	// Timeout bounds every request, e.g. "10s". Defaults to 30s.
	Timeout string `json:"timeout,omitempty"`
}

func NewDefault() *Config {
	c := &Config{}
	if value := os.Getenv(TestRootDirEnvKey); value != "" {
		c.testRootDir = filepath.Clean(value)
	}
	return c
}

// DefaultClientConfigPath is ~/.profit/client.yaml.
func DefaultClientConfigPath() string {
	return filepath.Join(homedir.HomeDir(), ".profit", "client.yaml")
}

// NewFromConfig returns an API client for config.
func NewFromConfig(config *Config) (*ProfitClient, error) {
	httpClient, err := NewHTTPClientFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}
	return NewProfitClient(config.Service.Server, httpClient), nil
}

// NewFromConfigFile returns an API client for the config stored in filename.
func NewFromConfigFile(filename string) (*ProfitClient, error) {
	config, err := ParseConfigFile(filename)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(config)
}

func NewHTTPClientFromConfig(config *Config) (*http.Client, error) {
	timeout, err := config.Service.timeout()
	if err != nil {
		return nil, err
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}, nil
}

func ParseConfigFile(filename string) (*Config, error) {
	config := NewDefault()
	contents, err := os.ReadFile(config.path(filename))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(contents, config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// WriteConfig validates service and stores it in filename.
func WriteConfig(filename string, service Service) error {
	config := NewDefault()
	config.Service = service
	if err := config.Validate(); err != nil {
		return err
	}
	return config.Persist(filename)
}

func (c *Config) Persist(filename string) error {
	contents, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	filename = c.path(filename)
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.WriteFile(filename, contents, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if errs := c.Service.validate(); len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %v", utilerrors.NewAggregate(errs).Error())
	}
	return nil
}

func (c *Config) path(filename string) string {
	if c.testRootDir == "" {
		return filename
	}
	return filepath.Join(c.testRootDir, filename)
}

func (s Service) validate() []error {
	var errs []error

	if s.Server == "" {
		errs = append(errs, fmt.Errorf("no server found"))
	} else if u, err := url.Parse(s.Server); err != nil {
		errs = append(errs, fmt.Errorf("invalid server format %q: %w", s.Server, err))
	} else {
		if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, fmt.Errorf("invalid server format %q: scheme must be http or https", s.Server))
		}
		if u.Hostname() == "" {
			errs = append(errs, fmt.Errorf("invalid server format %q: no hostname", s.Server))
		}
	}

	if _, err := s.timeout(); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func (s Service) timeout() (time.Duration, error) {
	if s.Timeout == "" {
		return defaultTimeout, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q", s.Timeout)
	}
	return d, nil
}

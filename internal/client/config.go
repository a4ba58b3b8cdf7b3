package client

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/client-go/util/homedir"
	"sigs.k8s.io/yaml"
)

// Config holds the optional client settings read from the client config file.
// Empty fields keep the values coming from the environment.
type Config struct {
	Service Service `json:"service"`
	// Webhook is the chat webhook used when --writeslack is not given.
	Webhook string `json:"webhook,omitempty"`
}

// Service contains the endpoints of the identity service and of the VMC API.
type Service struct {
	// CSP is the URL of the Cloud Services identity service.
	CSP string `json:"csp,omitempty"`
	// VMC is the URL of the VMC API (the part before /vmc/api/...).
	VMC string `json:"vmc,omitempty"`
}

// DefaultClientConfigPath returns the default path to the client config file.
func DefaultClientConfigPath() string {
	return filepath.Join(homedir.HomeDir(), ".sddcinfo", "client.yaml")
}

// ParseConfigFile reads and validates a client config file.
func ParseConfigFile(filename string) (*Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	config := &Config{}
	if err := yaml.Unmarshal(contents, config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfigFile reads the client config file when it exists. A missing file
// at the default location is not an error.
func LoadConfigFile(filename string) (*Config, error) {
	if filename == "" {
		filename = DefaultClientConfigPath()
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			return &Config{}, nil
		}
	}
	return ParseConfigFile(filename)
}

func (c *Config) Validate() error {
	validationErrors := make([]error, 0)
	validationErrors = append(validationErrors, validateURL("service.csp", c.Service.CSP)...)
	validationErrors = append(validationErrors, validateURL("service.vmc", c.Service.VMC)...)
	validationErrors = append(validationErrors, validateURL("webhook", c.Webhook)...)
	if len(validationErrors) > 0 {
		return fmt.Errorf("invalid configuration: %v", utilerrors.NewAggregate(validationErrors).Error())
	}
	return nil
}

func validateURL(field, value string) []error {
	validationErrors := make([]error, 0)
	if len(value) == 0 {
		return validationErrors
	}
	u, err := url.Parse(value)
	if err != nil {
		validationErrors = append(validationErrors, fmt.Errorf("invalid %s format %q: %w", field, value, err))
	}
	if err == nil && len(u.Hostname()) == 0 {
		validationErrors = append(validationErrors, fmt.Errorf("invalid %s format %q: no hostname", field, value))
	}
	return validationErrors
}

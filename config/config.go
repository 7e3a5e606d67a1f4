package config

import (
	"encoding/json"
	"fmt"
	"os"

	coretypes "github.com/projecteru2/core/types"
)

// Config holds global svcimage configuration.
type Config struct {
	// EC2URL is the compute endpoint of the cloud controller.
	EC2URL string `json:"ec2_url" mapstructure:"ec2_url"`
	// AccountID is the system account the image is registered under.
	AccountID string `json:"account_id" mapstructure:"account_id"`
	// CertPath is the path to the cloud certificate. Either CertPath or
	// BootstrapURL must be set for install.
	CertPath string `json:"cert_path" mapstructure:"cert_path"`
	// BootstrapURL is the bootstrap service endpoint, the alternative to
	// CertPath for deriving credentials.
	BootstrapURL string `json:"bootstrap_url" mapstructure:"bootstrap_url"`
	// PropertiesURL is the endpoint of the properties service.
	PropertiesURL string `json:"properties_url" mapstructure:"properties_url"`

	// TarballDir is scanned for TarballGlob when no tarball is given.
	TarballDir string `json:"tarball_dir" mapstructure:"tarball_dir"`
	// TarballGlob matches distributed service image tarballs.
	TarballGlob string `json:"tarball_glob" mapstructure:"tarball_glob"`
	// ImageBaseName prefixes every registered service image name.
	ImageBaseName string `json:"image_base_name" mapstructure:"image_base_name"`
	// PackageName is the installed package whose version tags new images.
	PackageName string `json:"package_name" mapstructure:"package_name"`
	// Services is the fixed list of platform services this image provides.
	// Each gets a services.<name>.worker.image property on install.
	Services []string `json:"services" mapstructure:"services"`

	// RunDir holds the invocation lock file.
	RunDir string `json:"run_dir" mapstructure:"run_dir"`
	// Debug passes --debug to platform tools and echoes command lines.
	Debug bool `json:"debug" mapstructure:"debug"`

	// Log configuration, uses eru core's ServerLogConfig.
	Log coretypes.ServerLogConfig `json:"log" mapstructure:"log"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		PropertiesURL: "http://127.0.0.1:8773/services/Properties/",
		TarballDir:    "/usr/share/eucalyptus-service-image",
		TarballGlob:   "*.tgz",
		ImageBaseName: "eucalyptus-service-image",
		PackageName:   "eucalyptus-service-image",
		Services:      []string{"imaging", "loadbalancing", "database"},
		RunDir:        "/var/run/svcimage",
		Log: coretypes.ServerLogConfig{
			Level:      "info",
			MaxSize:    500,
			MaxAge:     28,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from file, falling back to defaults.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()
	if path == "" {
		return conf, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path from CLI flag
	if err != nil {
		if os.IsNotExist(err) {
			return conf, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return conf, nil
}

// Validate checks the settings every operation needs.
func (c *Config) Validate() error {
	if c.EC2URL == "" || c.AccountID == "" {
		return fmt.Errorf("EC2 URL and account ID are required; " +
			"set SVCIMAGE_EC2_URL and SVCIMAGE_ACCOUNT_ID or use --ec2-url/--account-id")
	}
	return nil
}

// ValidateInstall checks everything install needs before touching anything.
// One of CertPath or BootstrapURL is mandatory.
func (c *Config) ValidateInstall() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.CertPath == "" && c.BootstrapURL == "" {
		return fmt.Errorf("either a cloud certificate path or a bootstrap URL is required; " +
			"set SVCIMAGE_CERT_PATH or SVCIMAGE_BOOTSTRAP_URL (or --cert-path/--bootstrap-url)")
	}
	return nil
}

// WorkerImageProperty returns the configuration property that designates
// the active worker image for a service.
func WorkerImageProperty(service string) string {
	return fmt.Sprintf("services.%s.worker.image", service)
}

// LockFile returns the path of the lock serializing svcimage invocations.
func (c *Config) LockFile() string {
	return c.RunDir + "/svcimage.lock"
}

package gdocai

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config identifies the Document AI processor to use
type Config struct {
	ProjectID       string `yaml:"project_id"`
	Location        string `yaml:"location"`
	ProcessorID     string `yaml:"processor_id"`
	CredentialsFile string `yaml:"credentials_file"` // empty = GOOGLE_APPLICATION_CREDENTIALS
	MimeType        string `yaml:"mime_type"`        // empty = application/pdf
}

// LoadConfig reads a YAML processor configuration
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a YAML processor configuration
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.ProjectID == "" || cfg.Location == "" || cfg.ProcessorID == "" {
		return nil, fmt.Errorf("config requires project_id, location and processor_id")
	}
	if cfg.MimeType == "" {
		cfg.MimeType = "application/pdf"
	}
	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	return &cfg, nil
}

// Endpoint is the regional API endpoint for the processor location
func (c *Config) Endpoint() string {
	return fmt.Sprintf("%s-documentai.googleapis.com:443", c.Location)
}

// ProcessorName is the full resource name of the processor
func (c *Config) ProcessorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", c.ProjectID, c.Location, c.ProcessorID)
}

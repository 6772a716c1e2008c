package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when neither --config nor CONFIG_PATH is set.
const DefaultPath = "./config.yml"

// Config represents the structure of config.yml used by the tool.
type Config struct {
	Report struct {
		Organization string `yaml:"organization"`
		Title        string `yaml:"title"`
		Currency     string `yaml:"currency"`
		ISOYear      int    `yaml:"iso_year"`
	} `yaml:"report"`
	Data struct {
		Input     string `yaml:"input"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"data"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var c Config
	c.Report.Organization = "Network Operations"
	c.Report.Title = "Network Incident Report"
	c.Report.Currency = "SEK"
	c.Data.Input = "data/incidents.csv"
	c.Data.OutputDir = "data"
	return &c
}

// Load parses the YAML configuration file at path on top of Default.
// Keys missing from the file keep their default value.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config", goerr.V("path", path))
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config", goerr.V("path", path))
	}
	slog.Info("config.loaded", "path", path)
	return c, nil
}

// LoadOptional behaves like Load but falls back to Default when the file
// does not exist.
func LoadOptional(path string) (*Config, error) {
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("config.missing", "path", path)
		return Default(), nil
	}
	return c, err
}

// Overrides are command-line values that take precedence over the file.
// Blank fields leave the configured value alone.
type Overrides struct {
	Input        string
	OutputDir    string
	Organization string
	Title        string
}

// Apply copies the non-blank overrides into c.
func (c *Config) Apply(o Overrides) {
	if o.Input != "" {
		c.Data.Input = o.Input
	}
	if o.OutputDir != "" {
		c.Data.OutputDir = o.OutputDir
	}
	if o.Organization != "" {
		c.Report.Organization = o.Organization
	}
	if o.Title != "" {
		c.Report.Title = o.Title
	}
}

// Validate checks the settings the commands rely on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.Input) == "" {
		return goerr.New("input path is required")
	}
	if strings.TrimSpace(c.Data.OutputDir) == "" {
		return goerr.New("output directory is required")
	}
	if c.Report.ISOYear < 0 {
		return goerr.New("iso_year must not be negative", goerr.V("iso_year", c.Report.ISOYear))
	}
	return nil
}

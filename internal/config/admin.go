package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AdminConfig configures the administrative console.
type AdminConfig struct {
	APIBaseURL       string        `yaml:"api_base_url"`
	PageSize         int           `yaml:"page_size"`
	RelationPageSize int           `yaml:"relation_page_size"` // folders fetched for the document form picker
	TimeZone         string        `yaml:"time_zone"`          // IANA name; local form timestamps use it
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	LogDir           string        `yaml:"log_dir"`
	MaxLogFiles      int           `yaml:"max_log_files"`
	Debug            bool          `yaml:"debug"`
}

// DefaultAdminConfig returns the console defaults.
func DefaultAdminConfig() *AdminConfig {
	return &AdminConfig{
		APIBaseURL:       "http://localhost:8080",
		PageSize:         DefaultPageSize,
		RelationPageSize: MaxPageSize,
		TimeZone:         "Local",
		RequestTimeout:   30 * time.Second,
		LogDir:           "logs",
		MaxLogFiles:      10,
	}
}

// LoadAdmin reads the YAML file at path over the defaults and applies
// environment overrides. A missing file is not an error unless required.
func LoadAdmin(path string, required bool) (*AdminConfig, error) {
	cfg := DefaultAdminConfig()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !required:
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("open admin config: %w", err)
		default:
			defer f.Close()
			if err := cfg.Read(f); err != nil {
				return nil, fmt.Errorf("read admin config %s: %w", path, err)
			}
		}
	}

	if url := os.Getenv("ADMIN_API_URL"); url != "" {
		cfg.APIBaseURL = url
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read decodes YAML from r into c, keeping fields the document leaves out.
func (c *AdminConfig) Read(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Write encodes c as YAML.
func (c *AdminConfig) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks the configuration is usable.
func (c *AdminConfig) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}
	if c.PageSize <= 0 || c.PageSize > MaxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d, got %d", MaxPageSize, c.PageSize)
	}
	if c.RelationPageSize <= 0 || c.RelationPageSize > MaxPageSize {
		return fmt.Errorf("relation_page_size must be between 1 and %d, got %d", MaxPageSize, c.RelationPageSize)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TimeZone.
func (c *AdminConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time_zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

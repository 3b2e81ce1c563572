// Package yaml loads the source registry from a YAML file.
package yaml

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/fwojciec/newsgrab"
	"gopkg.in/yaml.v3"
)

// Config represents a source registry file.
type Config struct {
	// Timezone applies to publish dates that carry no zone.
	Timezone string         `yaml:"timezone"`
	Sources  []SourceConfig `yaml:"sources"`
}

// SourceConfig represents one news source.
type SourceConfig struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Adapter    string            `yaml:"adapter"`
	Feeds      []FeedConfig      `yaml:"feeds"`
	Options    map[string]string `yaml:"options,omitempty"`
	DateOnline time.Time         `yaml:"date_online"`
	DateExpire *time.Time        `yaml:"date_expire,omitempty"`
}

// FeedConfig represents a feed a source publishes.
type FeedConfig struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// Default returns the built-in registry holding the e-info.org.tw source.
func Default() *Config {
	return &Config{
		Timezone: "Asia/Taipei",
		Sources: []SourceConfig{
			{
				ID:      "e-info.org.tw",
				Name:    "環境資訊中心",
				Adapter: "e-info.org.tw",
				Feeds: []FeedConfig{
					{Title: "全部文章", URL: "http://e-info.org.tw/rss.xml"},
				},
				DateOnline: time.Date(2013, 7, 26, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}

// Load reads and validates a registry file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates registry YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "failed to parse source config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal encodes the registry as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate returns EINVALID if the registry is unusable.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return newsgrab.Errorf(newsgrab.EINVALID, "at least one source is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Sources))
	for i, src := range c.Sources {
		if src.ID == "" {
			return newsgrab.Errorf(newsgrab.EINVALID, "source[%d]: id is required", i)
		}
		if seen[src.ID] {
			return newsgrab.Errorf(newsgrab.EINVALID, "source %q is defined twice", src.ID)
		}
		seen[src.ID] = true

		if len(src.Feeds) == 0 {
			return newsgrab.Errorf(newsgrab.EINVALID, "source %q: at least one feed is required", src.ID)
		}
		for j, f := range src.Feeds {
			if f.URL == "" {
				return newsgrab.Errorf(newsgrab.EINVALID, "source %q: feed[%d] url is required", src.ID, j)
			}
		}

		if err := src.Source().Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Location returns the configured timezone, UTC when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "unknown timezone %q", c.Timezone)
	}
	return loc, nil
}

// NewsSources converts the registry into domain sources.
func (c *Config) NewsSources() []*newsgrab.Source {
	sources := make([]*newsgrab.Source, 0, len(c.Sources))
	for _, src := range c.Sources {
		sources = append(sources, src.Source())
	}
	return sources
}

// Source converts the entry into a domain source.
func (s SourceConfig) Source() *newsgrab.Source {
	feeds := make([]newsgrab.Feed, 0, len(s.Feeds))
	for _, f := range s.Feeds {
		feeds = append(feeds, newsgrab.Feed{Title: f.Title, URL: f.URL})
	}

	var expire *time.Time
	if s.DateExpire != nil {
		t := s.DateExpire.UTC()
		expire = &t
	}

	return &newsgrab.Source{
		ID:         s.ID,
		Name:       s.Name,
		Adapter:    s.Adapter,
		Feeds:      feeds,
		Options:    s.Options,
		DateOnline: s.DateOnline.UTC(),
		DateExpire: expire,
	}
}

package siteconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/kulius/sitekit/ogimage"
)

// Load reads a YAML document from path, overlays it on Default, sanitizes the
// HTML snippets and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("siteconfig: %w", err)
	}
	return Parse(data)
}

// Parse is Load for an in-memory document. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("siteconfig: parse: %w", err)
	}
	cfg.applyEnv()
	cfg.sanitize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() {
	if cfg.Umami.APIKey == "" {
		cfg.Umami.APIKey = os.Getenv("UMAMI_API_KEY")
	}
	if cfg.Umami.Scripts == "" {
		cfg.Umami.Scripts = os.Getenv("UMAMI_TRACKING_CODE")
	}
}

func (cfg *Config) sanitize() {
	policy := bluemonday.UGCPolicy()
	cfg.Footer.CustomHTML = policy.Sanitize(cfg.Footer.CustomHTML)
	cfg.Announcement.Content = policy.Sanitize(cfg.Announcement.Content)
}

// Brand is the identity printed on preview images: the site title and the
// host of its URL.
func (cfg *Config) Brand() ogimage.Brand {
	b := ogimage.DefaultBrand
	if cfg.Consts.Title != "" {
		b.Name = cfg.Consts.Title
	}
	if u, err := url.Parse(cfg.Consts.URL); err == nil && u.Host != "" {
		b.Domain = u.Host
	}
	return b
}

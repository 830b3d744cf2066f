// Package config loads run configuration from TOML or YAML files.
//
// A configuration file mirrors the build command's flags:
//
//	[input]
//	cities = "data/cities.csv.gz"
//	regions = "data/states.txt"
//	adjacency = "data/adjacency.txt"
//
//	[forest]
//	start = "Lebanon"
//	max_degree = 3
//
//	[output]
//	dir = "out"
//	formats = ["json", "svg"]
//
// Relative input and output paths are resolved against the directory of the
// configuration file. Unknown keys are rejected.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cityforest/pkg/errors"
)

// Defaults.
const (
	DefaultMaxDegree = 3
	DefaultOutputDir = "."
	DefaultCacheTTL  = 7 * 24 * time.Hour
	DefaultAddr      = ":8080"
)

// Formats lists the supported output formats.
var Formats = []string{"json", "dot", "svg"}

// Config is a complete run configuration.
type Config struct {
	Input  Input  `toml:"input" yaml:"input"`
	Forest Forest `toml:"forest" yaml:"forest"`
	Output Output `toml:"output" yaml:"output"`
	Cache  Cache  `toml:"cache" yaml:"cache"`
	Server Server `toml:"server" yaml:"server"`
}

// Input names the data files.
type Input struct {
	Cities    string `toml:"cities" yaml:"cities"`
	Regions   string `toml:"regions" yaml:"regions"`
	Adjacency string `toml:"adjacency" yaml:"adjacency"`
	Limit     int    `toml:"limit" yaml:"limit"`           // 0 = all cities
	DropUnset bool   `toml:"drop_unset" yaml:"drop_unset"` // skip cities without coordinates
}

// Forest configures the builder.
type Forest struct {
	Start     string  `toml:"start" yaml:"start"`
	MaxDegree int     `toml:"max_degree" yaml:"max_degree"`
	Tag       string  `toml:"tag" yaml:"tag"`
	Bridge    bool    `toml:"bridge" yaml:"bridge"`
	Spanning  bool    `toml:"spanning" yaml:"spanning"` // one minimum spanning tree, no degree limit
	Expand    float64 `toml:"expand" yaml:"expand"` // miles, display only
}

// Output configures written artifacts.
type Output struct {
	Dir     string   `toml:"dir" yaml:"dir"`
	Formats []string `toml:"formats" yaml:"formats"`
	Labels  bool     `toml:"labels" yaml:"labels"`
	Weights bool     `toml:"weights" yaml:"weights"`
	Metrics string   `toml:"metrics" yaml:"metrics"` // Prometheus textfile path
}

// Cache configures the network cache.
type Cache struct {
	Disabled bool          `toml:"disabled" yaml:"disabled"`
	Dir      string        `toml:"dir" yaml:"dir"`
	TTL      time.Duration `toml:"ttl" yaml:"ttl"`
}

// Server configures the HTTP server.
type Server struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// Load reads the configuration file at path. The format is chosen by
// extension: .toml, .yaml or .yml. Defaults are not applied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", ext)
	}

	cfg.resolve(filepath.Dir(path))
	return &cfg, nil
}

// resolve makes relative file paths relative to base.
func (c *Config) resolve(base string) {
	for _, p := range []*string{
		&c.Input.Cities, &c.Input.Regions, &c.Input.Adjacency,
		&c.Output.Dir, &c.Output.Metrics, &c.Cache.Dir,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// SetDefaults fills unset fields with default values. The cache directory
// defaults to a "cityforest" directory under the user cache directory.
func (c *Config) SetDefaults() {
	if c.Forest.MaxDegree == 0 {
		c.Forest.MaxDegree = DefaultMaxDegree
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = []string{"json"}
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.Dir == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			c.Cache.Dir = filepath.Join(dir, "cityforest")
		}
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
}

// Validate checks the configuration for a build. It returns an
// errors.ErrCodeInvalidConfig error describing the first problem found.
func (c *Config) Validate() error {
	if c.Input.Cities == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "no cities file given")
	}
	if err := errors.ValidateName(c.Forest.Start); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid start city")
	}
	if c.Forest.MaxDegree < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_degree must be at least 1, got %d", c.Forest.MaxDegree)
	}
	if c.Input.Limit < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "limit must not be negative, got %d", c.Input.Limit)
	}
	if c.Forest.Expand < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "expand must not be negative, got %g", c.Forest.Expand)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative, got %s", c.Cache.TTL)
	}
	if err := errors.ValidateFormats(c.Output.Formats, Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid output formats")
	}
	return nil
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return buf.String()
}

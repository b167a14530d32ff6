package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/invopop/yaml"

	"github.com/hotbso/sam-2-xp12/internal/convert"
	"github.com/hotbso/sam-2-xp12/internal/log"
	"github.com/hotbso/sam-2-xp12/internal/sam"
)

// fileConfig is the optional on-disk tool configuration. Everything in it
// can also be given on the command line; flags win.
type fileConfig struct {
	DsfTool       string   `json:"dsftool"`           // path to the DSFTool binary
	JwResources   []string `json:"jw_resources"`      // facade override per jetway style 0..3
	JwHeightMin   *float64 `json:"jw_height_min"`     // admissible height band override
	JwHeightMax   *float64 `json:"jw_height_max"`
	MatchRadius   *float64 `json:"jw_match_radius"`   // default match radius override
	RotundaLength *float64 `json:"jw_rotunda_length"` // default rotunda length override
	LogLevel      string   `json:"log_level"`         // debug, info, warn, error
}

// readConfig reads the tool config from the file.
func readConfig(path string) (fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, err
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fileConfig{}, err
	}

	return cfg, nil
}

// defaultToolPath points at a DSFTool next to this executable.
func defaultToolPath() string {
	exe, err := os.Executable()
	if err != nil {
		exe = "."
	}

	tool := filepath.Join(filepath.Dir(exe), "DSFTool")
	if runtime.GOOS == "windows" {
		tool += ".exe"
	}
	return tool
}

// level maps the verbose flag to a log level.
func (c *commonOpts) level() string {
	if len(c.Verbose) > 0 {
		return "debug"
	}
	return "info"
}

// build resolves the common options into convert.Options plus a logger.
// Match radius and rotunda length from the config stay aside so command
// flags can take precedence over them.
func (c *commonOpts) build() (convert.Options, *log.Logger, error) {
	opts := convert.Options{
		SceneryDir: c.Scenery,
		ToolPath:   c.DsfTool,
	}

	level := c.level()

	if c.Config != "" {
		cfg, err := readConfig(c.Config)
		if err != nil {
			return opts, nil, fmt.Errorf("config %q: %w", c.Config, err)
		}

		if opts.ToolPath == "" {
			opts.ToolPath = cfg.DsfTool
		}
		if len(cfg.JwResources) > len(opts.Resources) {
			return opts, nil, fmt.Errorf("config %q: jw_resources has %d entries, want at most %d",
				c.Config, len(cfg.JwResources), len(opts.Resources))
		}
		copy(opts.Resources[:], cfg.JwResources)

		if cfg.JwHeightMin != nil || cfg.JwHeightMax != nil {
			band := sam.DefaultBand()
			if cfg.JwHeightMin != nil {
				band.Min = *cfg.JwHeightMin
			}
			if cfg.JwHeightMax != nil {
				band.Max = *cfg.JwHeightMax
			}
			opts.HeightBand = band
		}

		c.cfgRadius = cfg.MatchRadius
		c.cfgRotunda = cfg.RotundaLength

		if len(c.Verbose) == 0 && cfg.LogLevel != "" {
			level = cfg.LogLevel
		}
	}

	if opts.ToolPath == "" {
		opts.ToolPath = defaultToolPath()
	}

	lg := log.New(c.Scenery, level)
	lg.Infof("args: %v", os.Args)

	return opts, lg, nil
}

// radius resolves the match radius: flag beats config beats the default.
// An explicit zero stays zero.
func (c *commonOpts) radius(flag *float64) float64 {
	switch {
	case flag != nil:
		return *flag
	case c.cfgRadius != nil:
		return *c.cfgRadius
	}
	return defaultMatchRadius
}

// rotundaLength resolves the rotunda length the same way.
func (c *commonOpts) rotundaLength(flag *float64) float64 {
	switch {
	case flag != nil:
		return *flag
	case c.cfgRotunda != nil:
		return *c.cfgRotunda
	}
	return defaultRotundaLength
}

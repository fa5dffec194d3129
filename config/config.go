// Package config loads the settings shared by the looptrace layer tools from
// YAML, overlaid with the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/carbocation/looptracereader"
	"github.com/carbocation/looptracereader/nuclei"
	"gopkg.in/yaml.v3"
)

// NucleiChannelEnvVar names the environment variable that picks the nuclei
// channel of multichannel images. It overrides the config file.
const NucleiChannelEnvVar = "LOOPTRACE_NAPARI_NUCLEI_CHANNEL"

const (
	LabelsDense = "dense"
	LabelsRLE   = "rle"
)

type Config struct {
	// NucleiChannel is kept as text; it is only parsed when an image has
	// more than one channel.
	NucleiChannel string `yaml:"nucleiChannel"`

	// LabelsEncoding is "dense" or "rle".
	LabelsEncoding string `yaml:"labelsEncoding"`

	// Port is where cmd/layerserver listens.
	Port int `yaml:"port"`

	channelOrigin string
}

func DefaultConfig() *Config {
	return &Config{
		LabelsEncoding: LabelsDense,
		Port:           9019,
	}
}

// LoadConfig reads the YAML file at configPath over the defaults. A missing
// file gives the defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if configPath == "" {
		return cfg, nil
	}

	configPath, err := looptracereader.ExpandHome(configPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", configPath, err)
	}
	if cfg.NucleiChannel != "" {
		cfg.channelOrigin = configPath
	}

	return cfg, cfg.Validate()
}

func SaveConfig(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// ApplyEnvironment overlays settings from the environment, as seen through
// lookup (usually os.LookupEnv).
func (c *Config) ApplyEnvironment(lookup func(string) (string, bool)) {
	if v, set := lookup(NucleiChannelEnvVar); set {
		c.NucleiChannel = v
		c.channelOrigin = NucleiChannelEnvVar
	}
}

func (c *Config) Validate() error {
	switch c.LabelsEncoding {
	case LabelsDense, LabelsRLE:
	default:
		return fmt.Errorf("labelsEncoding must be %q or %q, not %q", LabelsDense, LabelsRLE, c.LabelsEncoding)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}

	return nil
}

// NucleiOptions gives the nuclei reader settings this config describes.
func (c *Config) NucleiOptions() nuclei.Options {
	origin := c.channelOrigin
	if origin == "" {
		origin = NucleiChannelEnvVar + " or nucleiChannel in the config file"
	}

	return nuclei.Options{
		Channel:   nuclei.ChannelSource{Raw: c.NucleiChannel, Origin: origin},
		LabelsRLE: c.LabelsEncoding == LabelsRLE,
	}
}

package radio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MQTTConfig holds MQTT connection settings for the result publisher.
type MQTTConfig struct {
	Broker        string `yaml:"broker" json:"broker"`
	PublishPrefix string `yaml:"publish_prefix" json:"publish_prefix"`
	ClientID      string `yaml:"client_id" json:"client_id"`
	Username      string `yaml:"username,omitempty" json:"username,omitempty"`
	Password      string `yaml:"password,omitempty" json:"password,omitempty"`
}

// Config is the full configuration file: engine knobs, the static
// split/MIMO group lists, and the optional MQTT hand-off settings. The
// engine itself only ever sees the parsed structs and never opens files.
type Config struct {
	Analysis Params      `yaml:"analysis" json:"analysis"`
	Groups   GroupConfig `yaml:"groups" json:"groups"`
	MQTT     MQTTConfig  `yaml:"mqtt,omitempty" json:"mqtt,omitempty"`
}

// LoadConfig loads the unified configuration from a YAML file, applying
// defaults for unset knobs and validating what is set.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := &Config{Analysis: DefaultParams()}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks knob ranges and group-list shape.
func (c *Config) Validate() error {
	p := c.Analysis
	if p.Azimuth.MinPoints < 0 {
		return fmt.Errorf("analysis.azimuth.min_points must not be negative")
	}
	if p.Azimuth.MaxDistance < 0 {
		return fmt.Errorf("analysis.azimuth.max_distance must not be negative")
	}
	if p.Swap.Beamwidth < 0 || p.Swap.Beamwidth > 360 {
		return fmt.Errorf("analysis.swap.beamwidth must be within [0, 360], got %g", p.Swap.Beamwidth)
	}
	if p.Neighbor.SearchRadius < 0 {
		return fmt.Errorf("analysis.neighbor.search_radius must not be negative")
	}
	if p.Neighbor.MaxNeighbors < 0 {
		return fmt.Errorf("analysis.neighbor.max_neighbors must not be negative")
	}

	for i, split := range c.Groups.SectorSplits {
		if split.ParentID == "" || split.ChildID == "" {
			return fmt.Errorf("groups.sector_splits[%d]: parent and child are required", i)
		}
		if split.Carrier == "" {
			return fmt.Errorf("groups.sector_splits[%d]: carrier is required", i)
		}
	}
	for i, g := range c.Groups.MassiveMIMO {
		if len(g.Beams) != 4 {
			return fmt.Errorf("groups.massive_mimo[%d]: exactly 4 beams required, got %d", i, len(g.Beams))
		}
		if g.Carrier == "" {
			return fmt.Errorf("groups.massive_mimo[%d]: carrier is required", i)
		}
		for j, beam := range g.Beams {
			if beam == "" {
				return fmt.Errorf("groups.massive_mimo[%d].beams[%d]: beam cell id is required", i, j)
			}
		}
	}
	return nil
}

// SaveConfig writes the configuration back to a YAML file.
func SaveConfig(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/cofenberg/pixellight-sub004/log"
	"github.com/cofenberg/pixellight-sub004/scene"
	"github.com/cofenberg/pixellight-sub004/scene/hierarchy"
	"github.com/cofenberg/pixellight-sub004/scene/loader"
)

var (
	ErrUnknownHierarchy = errors.New("config: unknown scene hierarchy class")
	ErrInvalidLeafItems = errors.New("config: bvh_leaf_items must be positive")
)

// Config holds the tool settings read from a TOML file.
type Config struct {
	Loader LoaderConfig `toml:"loader"`
	Scene  SceneConfig  `toml:"scene"`
	Log    LogConfig    `toml:"log"`
}

type LoaderConfig struct {
	// Skip default valued properties when saving.
	NoDefault bool `toml:"no_default"`
}

type SceneConfig struct {
	// Hierarchy class of new scene containers.
	Hierarchy string `toml:"hierarchy"`

	// Minimum number of items per BVH leaf.
	BVHLeafItems int `toml:"bvh_leaf_items"`
}

type LogConfig struct {
	Level string `toml:"level"`

	// Levels of single loggers keyed by module name, e.g. "scene loader".
	Modules map[string]string `toml:"modules,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := scene.DefaultOptions()
	return Config{
		Loader: LoaderConfig{NoDefault: true},
		Scene: SceneConfig{
			Hierarchy:    opts.HierarchyClass,
			BVHLeafItems: opts.BVHLeafItems,
		},
		Log: LogConfig{Level: "notice"},
	}
}

// Load reads and validates a configuration file. Settings missing from the
// file keep their default values.
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Parse decodes and validates a TOML document on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !hierarchy.IsRegistered(c.Scene.Hierarchy) {
		return fmt.Errorf("%w %q", ErrUnknownHierarchy, c.Scene.Hierarchy)
	}
	if c.Scene.BVHLeafItems <= 0 {
		return fmt.Errorf("%w; got %d", ErrInvalidLeafItems, c.Scene.BVHLeafItems)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for module, name := range c.Log.Modules {
		if _, err := log.ParseLevel(name); err != nil {
			return fmt.Errorf("config: module %q: %w", module, err)
		}
	}
	return nil
}

func (c Config) SceneOptions() scene.Options {
	return scene.Options{
		HierarchyClass: c.Scene.Hierarchy,
		BVHLeafItems:   c.Scene.BVHLeafItems,
	}
}

func (c Config) LoaderOptions() loader.Options {
	return loader.Options{NoDefault: c.Loader.NoDefault}
}

// The configured log level. Invalid names fall back to notice.
func (c Config) LogLevel() log.Level {
	level, _ := log.ParseLevel(c.Log.Level)
	return level
}

// The configured per-module log levels.
func (c Config) ModuleLevels() map[string]log.Level {
	levels := make(map[string]log.Level, len(c.Log.Modules))
	for module, name := range c.Log.Modules {
		levels[module], _ = log.ParseLevel(name)
	}
	return levels
}

// Encode the configuration as a TOML document.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

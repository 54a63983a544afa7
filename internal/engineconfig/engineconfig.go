package engineconfig

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"artillery-engine/internal/env"
	"artillery-engine/internal/terrain"
)

// ConfigPath is the default path to the engine config file, relative to the
// process working directory.
const ConfigPath = "config/engine.yaml"

// PathEnvVar overrides ConfigPath when set, so tools and match replays can
// point the engine at an alternate configuration.
const PathEnvVar = "ARTILLERY_CONFIG"

func configPath() string {
	return env.String(PathEnvVar, ConfigPath)
}

// Config holds the simulation tuning knobs. Persisted across runs so a match
// setup can be reproduced; in-game save data is separate and handled
// elsewhere.
type Config struct {
	// Gravity is the downward acceleration in world units per step².
	Gravity float32 `yaml:"gravity"`
	// WindScale converts the per-turn wind force into horizontal
	// acceleration applied to ballistic bodies each step.
	WindScale float32 `yaml:"wind_scale"`
	// MaxWind bounds the absolute wind force rolled each turn.
	MaxWind float32 `yaml:"max_wind"`
	// Restitution is the bounce factor for collisions against static bodies.
	Restitution float32 `yaml:"restitution"`
	// DamageScale converts impact speed into damage: floor(speed * scale).
	DamageScale float32 `yaml:"damage_scale"`
	// PowerScale converts the 0-100 power setting into launch speed.
	PowerScale float32 `yaml:"power_scale"`
	// ProjectileMaxAge retires shells that never hit anything, in steps.
	ProjectileMaxAge int `yaml:"projectile_max_age"`
	// PredictSteps bounds the aim-assist trajectory preview.
	PredictSteps int `yaml:"predict_steps"`

	Terrain terrain.Options `yaml:"terrain"`
}

// Default returns the default simulation configuration.
func Default() Config {
	return Config{
		Gravity:          0.5,
		WindScale:        0.05,
		MaxWind:          10,
		Restitution:      0.7,
		DamageScale:      5,
		PowerScale:       0.12,
		ProjectileMaxAge: 1200,
		PredictSteps:     180,
		Terrain:          terrain.DefaultOptions(),
	}
}

// Load reads the configuration from config/engine.yaml (or the PathEnvVar
// override). If the file is missing or invalid, returns Default() and does
// not create a file.
func Load() (Config, error) {
	data, err := os.ReadFile(configPath())
	if err != nil {
		return Default(), nil
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// Save writes the configuration to config/engine.yaml (or the PathEnvVar
// override), creating the directory if needed.
func Save(cfg Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Engine   EngineConfig   `yaml:"engine"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

// EngineConfig is the versioned decision-engine configuration. It is loaded
// once at process start, validated by engine.New, and never mutated afterwards.
type EngineConfig struct {
	Criteria            []CriterionConfig      `yaml:"criteria"`
	Groups              map[string]GroupConfig `yaml:"groups"`
	Preference          PreferenceConfig       `yaml:"preference"`
	TierLabels          map[string]string      `yaml:"tier_labels"`
	RiskSpreadThreshold float64                `yaml:"risk_spread_threshold"`
}

type CriterionConfig struct {
	ID        string      `yaml:"id"`
	Name      string      `yaml:"name"`
	Direction string      `yaml:"direction"` // benefit or cost
	Group     string      `yaml:"group"`
	Weight    float64     `yaml:"weight"` // in-group weight
	DomainMin float64     `yaml:"domain_min"`
	DomainMax float64     `yaml:"domain_max"`
	Unit      string      `yaml:"unit"`
	Curve     CurveConfig `yaml:"curve"`
}

type CurveConfig struct {
	Type string `yaml:"type"` // linear, piecewise, sigmoid

	// linear
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`

	// piecewise
	Points []CurvePoint `yaml:"points"`

	// sigmoid
	Midpoint  float64 `yaml:"midpoint"`
	Steepness float64 `yaml:"steepness"`
}

type CurvePoint struct {
	Raw   float64 `yaml:"raw"`
	Score float64 `yaml:"score"`
}

type GroupConfig struct {
	Weight       float64 `yaml:"weight"`
	GoalTarget   float64 `yaml:"goal_target"`
	GoalPriority float64 `yaml:"goal_priority"`
}

// PreferenceConfig holds the PROMETHEE indifference/preference threshold pair,
// expressed on the normalized 0-100 score scale.
type PreferenceConfig struct {
	IndifferenceThreshold float64 `yaml:"indifference_threshold"`
	PreferenceThreshold   float64 `yaml:"preference_threshold"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Engine: DefaultEngine(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// DefaultEngine returns the stock five-criterion configuration for data-center
// siting. In-group weights sum to 1.0; the stepped curves follow the scoring
// tables used by the upstream assessment pipeline.
func DefaultEngine() EngineConfig {
	return EngineConfig{
		Criteria: []CriterionConfig{
			{
				ID:        "land_suitability",
				Name:      "Land suitability",
				Direction: "benefit",
				Group:     "natural",
				Weight:    0.30,
				DomainMin: 0,
				DomainMax: 1,
				Unit:      "ratio",
				Curve:     CurveConfig{Type: "linear", Min: 0, Max: 1},
			},
			{
				ID:        "energy_resources",
				Name:      "Energy resource potential",
				Direction: "benefit",
				Group:     "natural",
				Weight:    0.35,
				DomainMin: 0,
				DomainMax: 1e7,
				Unit:      "MWh/yr",
				Curve: CurveConfig{Type: "piecewise", Points: []CurvePoint{
					{Raw: 0, Score: 40},
					{Raw: 20000, Score: 60},
					{Raw: 50000, Score: 75},
					{Raw: 100000, Score: 90},
					{Raw: 200000, Score: 100},
				}},
			},
			{
				ID:        "grid_capacity",
				Name:      "Grid capacity",
				Direction: "benefit",
				Group:     "natural",
				Weight:    0.23,
				DomainMin: 0,
				DomainMax: 1e5,
				Unit:      "MW",
				Curve: CurveConfig{Type: "piecewise", Points: []CurvePoint{
					{Raw: 0, Score: 50},
					{Raw: 50, Score: 70},
					{Raw: 100, Score: 80},
					{Raw: 200, Score: 95},
					{Raw: 400, Score: 100},
				}},
			},
			{
				ID:        "environmental_impact",
				Name:      "Environmental impact",
				Direction: "cost",
				Group:     "natural",
				Weight:    0.12,
				DomainMin: 0,
				DomainMax: 1,
				Unit:      "index",
				Curve:     CurveConfig{Type: "linear", Min: 0, Max: 1},
			},
			{
				ID:        "economic_feasibility",
				Name:      "Economic feasibility",
				Direction: "benefit",
				Group:     "economic",
				Weight:    1.0,
				DomainMin: 0,
				DomainMax: 1,
				Unit:      "index",
				Curve:     CurveConfig{Type: "sigmoid", Midpoint: 0.5, Steepness: 8},
			},
		},
		Groups: map[string]GroupConfig{
			"economic": {Weight: 0.3, GoalTarget: 60, GoalPriority: 0.5},
			"natural":  {Weight: 0.7, GoalTarget: 65, GoalPriority: 0.5},
		},
		Preference: PreferenceConfig{
			IndifferenceThreshold: 5,
			PreferenceThreshold:   25,
		},
		TierLabels: map[string]string{
			"Excellent": "Strongly Recommended",
			"Good":      "Recommended",
			"Fair":      "Worth Considering",
			"Poor":      "Not Recommended",
			"VeryPoor":  "Strongly Not Recommended",
		},
		RiskSpreadThreshold: 400,
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SITEWISE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("SITEWISE_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("SITEWISE_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("SITEWISE_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("SITEWISE_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("SITEWISE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Package config holds the CLI surface: every flag cmd/keyboardgen accepts,
// plus the layout.Constants fields the driver threads through to the GA
// engine and evaluator. Generalised from the teacher's GA-hyperparameters-only
// Config, keeping its Default/LoadFromFile/Validate/GetParameterInfo idiom.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/layoutforge/qmkevolve/internal/layout"
	"gopkg.in/yaml.v3"
)

// Config holds the full CLI surface plus the Constants the engine runs with.
type Config struct {
	CfgPath    string `json:"cfg_path" yaml:"cfg_path"`
	CorpusPath string `json:"corpus_path" yaml:"corpus_path"`
	SeedPath   string `json:"seed_path" yaml:"seed_path"`
	EvalLayout string `json:"eval_layout" yaml:"eval_layout"`
	ConfigFile string `json:"config_file" yaml:"config_file"`
	OutputFile string `json:"output_file" yaml:"output_file"`

	Workers   int    `json:"workers" yaml:"workers"`
	Verbose   bool   `json:"verbose" yaml:"verbose"`
	LogFormat string `json:"log_format" yaml:"log_format"`

	Constants layout.Constants `json:"constants" yaml:"constants"`
}

// Default returns the CLI defaults: no input paths set (the caller must
// supply --cfg-path/--corpus-path), and layout.DefaultConstants() for every
// tunable.
func Default() Config {
	return Config{
		OutputFile: "best_layout.json",
		Workers:    0,
		Verbose:    false,
		LogFormat:  "text",
		Constants:  layout.DefaultConstants(),
	}
}

// LoadFromFile loads a JSON override file, starting from Default() so an
// override file may specify only the fields it wants to change.
func LoadFromFile(filename string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %q: %w", filename, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %q: %w", filename, err)
	}

	return cfg, nil
}

// LoadFromYAMLFile loads a YAML override file, for users who prefer to keep
// board/run settings in a more hand-editable format than JSON.
func LoadFromYAMLFile(filename string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %q: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %q: %w", filename, err)
	}

	return cfg, nil
}

// SaveToFile writes cfg as indented JSON.
func (c Config) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %q: %w", filename, err)
	}

	return nil
}

// Validate checks the CLI surface and the Constants for internal
// consistency before a run starts.
func (c Config) Validate() error {
	if c.CfgPath == "" {
		return errors.New("config: --cfg-path is required")
	}

	if c.CorpusPath == "" {
		return errors.New("config: --corpus-path is required")
	}

	if _, err := os.Stat(c.CfgPath); os.IsNotExist(err) {
		return fmt.Errorf("config: --cfg-path does not exist: %s", c.CfgPath)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config: --log-format must be \"text\" or \"json\", got %q", c.LogFormat)
	}

	if c.Workers < 0 {
		return errors.New("config: --workers must be non-negative (0 = auto-detect)")
	}

	return c.validateConstants()
}

func (c Config) validateConstants() error {
	cnst := c.Constants

	if cnst.PopSize < 2 {
		return errors.New("config: pop-size must be at least 2")
	}

	if cnst.Runs < 0 {
		return errors.New("config: runs must be non-negative (0 = unlimited with convergence)")
	}

	if cnst.Runs == 0 && cnst.ConvergenceStops == 0 {
		return errors.New("config: either runs or convergence-stops must be set (not both zero)")
	}

	if cnst.BatchSize <= 0 || cnst.BatchNum <= 0 {
		return errors.New("config: batch-size and batch-num must be positive")
	}

	if cnst.MaxPhysPressed <= 0 || cnst.MaxPhysIdle <= 0 || cnst.MaxModPressed <= 0 {
		return errors.New("config: max-phys-pressed, max-phys-idle, and max-mod-pressed must be positive")
	}

	if cnst.ConvergenceStops < 0 {
		return errors.New("config: convergence-stops must be non-negative")
	}

	if cnst.ConvergenceTolerance < 0 {
		return errors.New("config: convergence-tolerance must be non-negative")
	}

	return nil
}

// ParameterInfo describes one self-documenting flag (name, type, default,
// bounds). cmd/keyboardgen declares its flags directly with the flag
// package and does not read this metadata.
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default"`
	Required    bool   `json:"required"`
	Min         any    `json:"min,omitempty"`
	Max         any    `json:"max,omitempty"`
}

// GetParameterInfo returns metadata for every CLI flag.
func GetParameterInfo() []ParameterInfo {
	d := Default()

	return []ParameterInfo{
		{Name: "cfg-path", Type: "string", Description: "Path to the layout/board config file", Required: true},
		{Name: "corpus-path", Type: "string", Description: "Path to the corpus text file", Required: true},
		{Name: "seed-path", Type: "string", Description: "Optional path to a seed layout file"},
		{Name: "eval-layout", Type: "string", Description: "Evaluate one layout file against --corpus-path and exit instead of running the GA"},
		{Name: "config", Type: "string", Description: "Optional JSON override file"},
		{Name: "output-file", Type: "string", Description: "Path to write the best layout found as JSON", Default: d.OutputFile},
		{Name: "workers", Type: "integer", Description: "Number of parallel workers (0 = auto-detect)", Default: d.Workers, Min: 0},
		{Name: "verbose", Type: "boolean", Description: "Enable debug-level logging", Default: d.Verbose},
		{Name: "log-format", Type: "string", Description: "text or json", Default: d.LogFormat},
		{Name: "pop-size", Type: "integer", Description: "Population size", Default: d.Constants.PopSize, Min: 2},
		{Name: "runs", Type: "integer", Description: "Generations to run (0 = unlimited with convergence)", Default: d.Constants.Runs, Min: 0},
		{Name: "batch-size", Type: "integer", Description: "Corpus events sampled per fitness round", Default: d.Constants.BatchSize, Min: 1},
		{Name: "batch-num", Type: "integer", Description: "Rounds averaged per fitness call", Default: d.Constants.BatchNum, Min: 1},
		{Name: "max-phys-pressed", Type: "integer", Description: "Max simultaneously pressed physical keys", Default: d.Constants.MaxPhysPressed, Min: 1},
		{Name: "max-phys-idle", Type: "integer", Description: "Max consecutive physical events without an emitted key event", Default: d.Constants.MaxPhysIdle, Min: 1},
		{Name: "max-mod-pressed", Type: "integer", Description: "Max simultaneously pressed modifiers", Default: d.Constants.MaxModPressed, Min: 1},
		{Name: "max-phys-mod-per-layer", Type: "integer", Description: "Max mod-bearing positions per layer", Default: d.Constants.MaxPhysModPerLayer, Min: 0},
		{Name: "max-phys-duplicate-per-layer", Type: "integer", Description: "Max duplicate key-sets per layer", Default: d.Constants.MaxPhysDuplicatePerLayer, Min: 0},
		{Name: "stats-interval", Type: "integer", Description: "Generations between detailed stats/board renders", Default: d.Constants.StatsInterval, Min: 1},
		{Name: "convergence-stops", Type: "integer", Description: "Stop after N generations with unchanged best fitness (0 = disabled)", Default: d.Constants.ConvergenceStops, Min: 0},
		{Name: "convergence-tolerance", Type: "float", Description: "Fitness difference tolerance for convergence detection", Default: d.Constants.ConvergenceTolerance, Min: 0.0},
	}
}

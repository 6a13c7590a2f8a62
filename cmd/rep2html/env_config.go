package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-rep2html/internal/config"
	"github.com/alnah/go-rep2html/internal/hints"
)

// envConfig holds configuration from REP2HTML_* environment variables.
type envConfig struct {
	ConfigPath string // REP2HTML_CONFIG: config file name or path
	InputDir   string // REP2HTML_INPUT_DIR: directory holding the documents
	OutputDir  string // REP2HTML_OUTPUT_DIR: output directory
	Workers    int    // REP2HTML_WORKERS: parallel workers
	LogLevel   string // REP2HTML_LOG_LEVEL: quiet, normal, debug
}

// knownEnvVars lists valid REP2HTML_* environment variables.
var knownEnvVars = map[string]bool{
	"REP2HTML_CONFIG":     true,
	"REP2HTML_INPUT_DIR":  true,
	"REP2HTML_OUTPUT_DIR": true,
	"REP2HTML_WORKERS":    true,
	"REP2HTML_LOG_LEVEL":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed worker counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("REP2HTML_CONFIG"),
		InputDir:   os.Getenv("REP2HTML_INPUT_DIR"),
		OutputDir:  os.Getenv("REP2HTML_OUTPUT_DIR"),
		LogLevel:   strings.ToLower(os.Getenv("REP2HTML_LOG_LEVEL")),
	}
	if workers := os.Getenv("REP2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized REP2HTML_*
// variable, which usually means a typo.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "REP2HTML_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig copies environment values into cfg where the file left
// them empty. Flags are merged afterwards, giving
// flags > environment > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
	switch env.LogLevel {
	case config.LogQuiet, config.LogNormal, config.LogDebug:
		if cfg.Log.Level == "" || cfg.Log.Level == config.LogNormal {
			cfg.Log.Level = env.LogLevel
		}
	}
}

// loadConfig loads the file named by flagConfig, or by REP2HTML_CONFIG when
// the flag is empty, then applies the environment. No file means defaults.
func loadConfig(flagConfig string) (*config.Config, error) {
	env := loadEnvConfig()
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			hint := ""
			if errors.Is(err, config.ErrConfigNotFound) {
				hint = hints.ForConfigNotFound(config.SearchPaths(name))
			}
			return nil, fmt.Errorf("loading config: %w%s", err, hint)
		}
	}
	applyEnvConfig(env, cfg)
	return cfg, nil
}

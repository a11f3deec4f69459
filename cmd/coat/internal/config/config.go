package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-coat/coat/pkg/engine"
)

// FileName is the optional configuration file read from the project root.
const FileName = "coat.yaml"

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Config represents the optional coat.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Window WindowConfig `yaml:"window"`
	Engine EngineConfig `yaml:"engine"`
	Debug  DebugConfig  `yaml:"debug"`
	Log    LogConfig    `yaml:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// WindowConfig sizes headless surfaces, such as the one used by coat tree.
type WindowConfig struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// EngineConfig contains engine settings.
type EngineConfig struct {
	MaxUpdateRounds int    `yaml:"max_update_rounds,omitempty"`
	OrphanTTL       uint64 `yaml:"orphan_ttl,omitempty"`
	FrameInterval   string `yaml:"frame_interval,omitempty"`
}

// DebugConfig enables the debug server.
type DebugConfig struct {
	Addr    string `yaml:"addr,omitempty"`
	Metrics bool   `yaml:"metrics,omitempty"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root            string
	ModulePath      string
	AppName         string
	Width           int
	Height          int
	MaxUpdateRounds int
	OrphanTTL       uint64
	FrameInterval   time.Duration
	DebugAddr       string
	Metrics         bool
	LogLevel        slog.Level
}

// LoadOptional reads coat.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads coat.yaml (if present) and resolves defaults. A go.mod in
// dir is optional; when present its module path names the app.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	width, height := cfg.Window.Width, cfg.Window.Height
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("window size must not be negative (got %dx%d)", width, height)
	}
	if width == 0 {
		width = defaultWidth
	}
	if height == 0 {
		height = defaultHeight
	}

	if cfg.Engine.MaxUpdateRounds < 0 {
		return nil, fmt.Errorf("engine.max_update_rounds must not be negative (got %d)", cfg.Engine.MaxUpdateRounds)
	}

	var interval time.Duration
	if s := strings.TrimSpace(cfg.Engine.FrameInterval); s != "" {
		interval, err = time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid engine.frame_interval: %w", err)
		}
		if interval < 0 {
			return nil, fmt.Errorf("engine.frame_interval must not be negative (got %s)", s)
		}
	}

	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	return &Resolved{
		Root:            dir,
		ModulePath:      modulePath,
		AppName:         appName,
		Width:           width,
		Height:          height,
		MaxUpdateRounds: cfg.Engine.MaxUpdateRounds,
		OrphanTTL:       cfg.Engine.OrphanTTL,
		FrameInterval:   interval,
		DebugAddr:       strings.TrimSpace(cfg.Debug.Addr),
		Metrics:         cfg.Debug.Metrics,
		LogLevel:        level,
	}, nil
}

// EngineConfig returns the in-process engine configuration. Unset values
// are left zero so the engine applies its own defaults.
func (r *Resolved) EngineConfig(logger *slog.Logger, metrics *engine.Metrics) engine.Config {
	return engine.Config{
		MaxUpdateRounds: r.MaxUpdateRounds,
		OrphanTTL:       r.OrphanTTL,
		FrameInterval:   r.FrameInterval,
		Metrics:         metrics,
		TracerName:      r.AppName,
		Logger:          logger,
	}
}

// FindProjectRoot walks up from the current directory to find go.mod or
// coat.yaml. It falls back to the current directory.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		for _, name := range []string{"go.mod", FileName} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	if err := module.CheckImportPath(path); err != nil {
		return "", fmt.Errorf("invalid module path in go.mod: %w", err)
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "coat_app"
	}
	return base
}

func parseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", s, err)
	}
	return level, nil
}

package core

import (
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const ConfigFile = "greetsite.config.yml"

type Config struct {
	OutputDir    string `yaml:"outputDir"`
	PublicDir    string `yaml:"publicDir"`
	ViewsDir     string `yaml:"viewsDir"`
	GreetingName string `yaml:"greetingName"`
	Title        string `yaml:"title"`
	DebugHeaders bool   `yaml:"debugHeaders"`
	DebugLogs    bool   `yaml:"debugLogs"`
}

func DefaultConfig() *Config {
	return &Config{
		OutputDir:    "./cache",
		PublicDir:    "public",
		GreetingName: "Samuel Rai",
		Title:        "Document",
	}
}

// LoadConfig reads the YAML config at path and applies GREETSITE_* environment
// overrides. A missing or unreadable file yields the defaults.
var LoadConfig = func(path string) *Config {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(path); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeConfig(cfg, fileCfg)
		}
	}

	applyEnv(cfg)
	return cfg
}

func mergeConfig(dst *Config, src Config) {
	if src.OutputDir != "" {
		dst.OutputDir = src.OutputDir
	}
	if src.PublicDir != "" {
		dst.PublicDir = src.PublicDir
	}
	if src.ViewsDir != "" {
		dst.ViewsDir = src.ViewsDir
	}
	if src.GreetingName != "" {
		dst.GreetingName = src.GreetingName
	}
	if src.Title != "" {
		dst.Title = src.Title
	}
	dst.DebugHeaders = src.DebugHeaders
	dst.DebugLogs = src.DebugLogs
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("GREETSITE_NAME"); ok {
		cfg.GreetingName = v
	}
	if v, ok := os.LookupEnv("GREETSITE_VIEWS"); ok {
		cfg.ViewsDir = v
	}
	if v, ok := os.LookupEnv("GREETSITE_DEBUG_LOGS"); ok {
		cfg.DebugLogs = cast.ToBool(v)
	}
	if v, ok := os.LookupEnv("GREETSITE_DEBUG_HEADERS"); ok {
		cfg.DebugHeaders = cast.ToBool(v)
	}
}

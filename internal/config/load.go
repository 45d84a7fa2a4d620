package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the working directory and
// in ConfigDir.
const FileName = "flvertool.yaml"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	if err := applyFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(".", FileName),
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Flverkit")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Flverkit")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "flverkit")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "flverkit")
	}
}

// loadFromFile merges a YAML file into cfg. Paths in the file's resolver
// section are taken relative to the file.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fromFile := *cfg
	fromFile.Resolver.MetaparamPath = ""
	fromFile.Resolver.DescriptorPath = ""
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	fromFile.Resolver.MetaparamPath = resolvePath(dir, fromFile.Resolver.MetaparamPath, cfg.Resolver.MetaparamPath)
	fromFile.Resolver.DescriptorPath = resolvePath(dir, fromFile.Resolver.DescriptorPath, cfg.Resolver.DescriptorPath)
	*cfg = fromFile
	return nil
}

func resolvePath(dir, p, fallback string) string {
	switch {
	case p == "":
		return fallback
	case filepath.IsAbs(p):
		return p
	default:
		return filepath.Join(dir, p)
	}
}

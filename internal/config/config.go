// Package config handles flvertool configuration loading and management.
package config

import (
	"github.com/Faultbox/flverkit/internal/logger"
	"github.com/Faultbox/flverkit/pkg/shader"
)

// Config holds all flvertool settings.
type Config struct {
	Resolver   ResolverConfig   `yaml:"resolver"`
	Conversion ConversionConfig `yaml:"conversion"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ResolverConfig selects the engine generation and its data tables.
type ResolverConfig struct {
	Game           shader.Generation `yaml:"game"`
	MetaparamPath  string            `yaml:"metaparams"`  // sampler groups, required for MATBIN shaders
	DescriptorPath string            `yaml:"descriptors"` // material definitions
	TypeUnkX00     int               `yaml:"type_unk_x00"`
	SkinnedColors  int               `yaml:"skinned_colors"`
	Workers        int               `yaml:"workers"` // concurrent resolutions in batch mode
}

// ConversionConfig holds settings for the convert and dummy commands.
type ConversionConfig struct {
	Degrees   bool `yaml:"degrees"`   // Euler angles are read and printed in degrees
	Precision int  `yaml:"precision"` // decimal places printed
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string            `yaml:"level"`
	File  logger.FileConfig `yaml:"file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Resolver: ResolverConfig{
			Game:          shader.DS1,
			SkinnedColors: shader.DefaultSkinnedColors,
			Workers:       4,
		},
		Conversion: ConversionConfig{
			Degrees:   true,
			Precision: 6,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  logger.DefaultFileConfig(""),
		},
	}
}

// ResolverOptions returns the shader options this config sets directly.
// Table paths are loaded by the caller.
func (c ResolverConfig) ResolverOptions() []shader.Option {
	return []shader.Option{
		shader.WithTypeUnkX00(c.TypeUnkX00),
		shader.WithSkinnedColors(c.SkinnedColors),
	}
}

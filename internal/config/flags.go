package config

import (
	"flag"
	"fmt"

	"github.com/Faultbox/flverkit/pkg/shader"
)

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagGame        = flag.String("game", "", "Engine generation: ds1, bb or er (game names accepted)")
	flagMetaparams  = flag.String("metaparams", "", "Sampler group table (YAML or JSON)")
	flagDescriptors = flag.String("descriptors", "", "Material descriptor table (YAML)")
)

// ParseFlags parses global flags. Call this early in main(); the command and
// its own arguments are left in flag.Args().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagGame != "" {
		gen, err := shader.ParseGeneration(*flagGame)
		if err != nil {
			return fmt.Errorf("--game: %w", err)
		}
		cfg.Resolver.Game = gen
	}
	if *flagMetaparams != "" {
		cfg.Resolver.MetaparamPath = *flagMetaparams
	}
	if *flagDescriptors != "" {
		cfg.Resolver.DescriptorPath = *flagDescriptors
	}
	return nil
}

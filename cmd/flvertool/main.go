// flvertool inspects material vertex layouts and converts coordinates between
// game space and editor space.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/flverkit/internal/config"
	"github.com/Faultbox/flverkit/internal/logger"
	"github.com/Faultbox/flverkit/pkg/shader"
)

// errUsage marks a command invoked with bad arguments; its message has
// already been printed.
var errUsage = errors.New("usage")

// app carries what every command needs.
type app struct {
	cfg *config.Config
	log *zap.Logger
	out io.Writer
}

func main() {
	flag.Usage = printUsage
	config.ParseFlags()
	os.Exit(run(flag.Args()))
}

func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, cfg.Logging.File, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	a := &app{cfg: cfg, log: logger.Log, out: os.Stdout}

	command, rest := args[0], args[1:]
	var cmdErr error
	switch command {
	case "layout":
		cmdErr = a.cmdLayout(rest)
	case "info":
		cmdErr = a.cmdInfo(rest)
	case "batch":
		cmdErr = a.cmdBatch(rest)
	case "convert", "conv":
		cmdErr = a.cmdConvert(rest)
	case "dummy":
		cmdErr = a.cmdDummy(rest)
	case "config":
		cmdErr = a.cmdConfig(rest)
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return 1
	}

	switch {
	case cmdErr == nil:
		return 0
	case errors.Is(cmdErr, errUsage), errors.Is(cmdErr, flag.ErrHelp):
		return 2
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		return 1
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `flvertool - material vertex layouts and game/editor space conversion

Usage:
  flvertool [global options] <command> [options]

Global options:
  --config <file>        Config file (default ./flvertool.yaml, then user config dir)
  --game <gen>           Engine generation: ds1, bb, er (ptde, ds3, sekiro, eldenring)
  --descriptors <file>   Material descriptor table (YAML)
  --metaparams <file>    Sampler group table (YAML or JSON)
  --debug                Enable debug logging

Commands:
  layout [-kind static|skinned] <material>...     Print vertex layouts
  info <material>...                              Print resolved shader info
  batch [-encoding e] [-kind k] [-j n] <names>    Resolve every material in a name list
  convert [-to editor|game] <kind> <numbers>...   Convert vector, vec4, euler, quat, mat3, trs or matrix
  dummy [-from game|editor] <numbers>...          Convert dummy forward/up vectors
  config [-save]                                  Print (or save) the effective config

Examples:
  flvertool layout "M_2Foliage[D][B].mtd"
  flvertool --game er --metaparams meta.json --descriptors mat.yaml layout -kind skinned AEG001_Wall.matbin
  flvertool batch -encoding shift_jis names.txt
  flvertool convert euler 90 0 45
  flvertool dummy 0 0 1 0 1 0`)
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: flvertool %s %s\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

// usageError prints usage for fs and returns errUsage.
func usageError(fs *flag.FlagSet) error {
	fs.Usage()
	return errUsage
}

// resolver builds the configured resolver and loads its descriptor table.
func (a *app) resolver() (shader.Resolver, shader.DescriptorTable, error) {
	rc := a.cfg.Resolver
	opts := append(rc.ResolverOptions(), shader.WithLogger(logger.Named("resolver")))

	if rc.MetaparamPath != "" {
		table, err := shader.LoadMetaparams(rc.MetaparamPath)
		if err != nil {
			return nil, nil, err
		}
		a.log.Debug("loaded metaparams", zap.String("path", rc.MetaparamPath), zap.Int("shaders", len(table)))
		opts = append(opts, shader.WithMetaparams(table))
	}

	var descriptors shader.DescriptorTable
	if rc.DescriptorPath != "" {
		table, err := shader.LoadDescriptors(rc.DescriptorPath)
		if err != nil {
			return nil, nil, err
		}
		a.log.Debug("loaded descriptors", zap.String("path", rc.DescriptorPath), zap.Int("materials", len(table)))
		descriptors = table
	}

	r, err := shader.NewResolver(rc.Game, opts...)
	if err != nil {
		return nil, nil, err
	}
	return r, descriptors, nil
}

func (a *app) cmdConfig(args []string) error {
	fs := newFlagSet("config", "[-save]")
	save := fs.Bool("save", false, "Write the effective config to the user config directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *save {
		path, err := a.cfg.Save()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved: %s\n", path)
		return nil
	}

	data, err := a.cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = a.out.Write(data)
	return err
}

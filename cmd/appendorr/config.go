package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v3"
)

// config collects capture settings from the config file and the flags.
type config struct {
	Output      string        `koanf:"output"`
	Stderr      string        `koanf:"stderr"`
	BufferSize  int           `koanf:"buffer_size"`
	Strategy    string        `koanf:"strategy"`
	Value       string        `koanf:"value"`
	MaxArchives int           `koanf:"max_archives"`
	MaxAge      time.Duration `koanf:"max_age"`
	Compress    bool          `koanf:"compress"`
}

// StderrPath returns the stderr destination: the configured one, or the
// stdout destination with an .err extension swapped in.
func (c *config) StderrPath() string {
	if c.Stderr != "" {
		return c.Stderr
	}

	ext := filepath.Ext(c.Output)

	return c.Output[:len(c.Output)-len(ext)] + ".err"
}

// gatherConfig loads the optional config file, then lets set flags override it.
func gatherConfig(cmd *cli.Command) (*config, error) {
	conf := &config{}

	if path := cmd.String("config"); path != "" {
		if err := loadFile(conf, path); err != nil {
			return nil, err
		}
	}

	if cmd.IsSet("output") || conf.Output == "" {
		conf.Output = cmd.String("output")
	}

	if cmd.IsSet("stderr") {
		conf.Stderr = cmd.String("stderr")
	}

	if cmd.IsSet("buffer") {
		conf.BufferSize = int(cmd.Int("buffer"))
	}

	if cmd.IsSet("strategy") {
		conf.Strategy = cmd.String("strategy")
		conf.Value = cmd.String("value")
	}

	if cmd.IsSet("max-archives") {
		conf.MaxArchives = int(cmd.Int("max-archives"))
	}

	if cmd.IsSet("max-age") {
		conf.MaxAge = cmd.Duration("max-age")
	}

	if cmd.IsSet("compress") {
		conf.Compress = cmd.Bool("compress")
	}

	if conf.Output == "" {
		return nil, errors.New("no output file; set --output or the config file's output key")
	}

	return conf, nil
}

// loadFile reads a YAML or JSON config file into conf.
func loadFile(conf *config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var parser koanf.Parser

	switch filepath.Ext(path) {
	case ".json":
		parser = json.Parser()
	default:
		parser = yaml.Parser()
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(raw), parser); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if err := k.Unmarshal("", conf); err != nil {
		return fmt.Errorf("reading config values: %w", err)
	}

	return nil
}

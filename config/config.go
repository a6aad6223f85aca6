package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/kingme/search"
)

const (
	ConfigDebug               = "debug"
	ConfigConfigFile          = "config-file"
	ConfigMinimaxDepth        = "minimax-depth"
	ConfigAlphaBetaDepth      = "alphabeta-depth"
	ConfigAISide              = "ai-side"
	ConfigAIKind              = "ai-kind"
	ConfigCacheMemoryFraction = "cache-memory-fraction"
	ConfigAutoplayGames       = "autoplay-games"
	ConfigAutoplayThreads     = "autoplay-threads"
	ConfigAutoplayRandomPlies = "autoplay-random-plies"
	ConfigAutoplayMaxPlies    = "autoplay-max-plies"
	ConfigAutoplayLogfile     = "autoplay-logfile"
	ConfigAutoplaySeed        = "autoplay-seed"
	ConfigGamestorePath       = "gamestore-path"
	ConfigCPUProfile          = "cpu-profile"
	ConfigMemProfile          = "mem-profile"
)

var ErrBadSetting = errors.New("bad setting")

type Config struct {
	*viper.Viper
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("kingme", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.String(ConfigConfigFile, "", "yaml file to read settings from; ./kingme.yaml is read if it exists")
	fs.Int(ConfigMinimaxDepth, search.DefaultMinimaxDepth, "plies searched by the minimax player")
	fs.Int(ConfigAlphaBetaDepth, search.DefaultAlphaBetaDepth, "plies searched by the alpha-beta player")
	fs.String(ConfigAISide, "p2", "side the computer plays in the shell: p1 (white) or p2 (black)")
	fs.String(ConfigAIKind, "alphabeta", "computer player in the shell: minimax or alphabeta")
	fs.Float64(ConfigCacheMemoryFraction, search.DefaultMemoryFraction,
		"share of system memory a decision's tables may use before a warning")
	fs.Int(ConfigAutoplayGames, 10, "games played by autoplay")
	fs.Int(ConfigAutoplayThreads, runtime.NumCPU(), "games autoplay runs at once")
	fs.Int(ConfigAutoplayRandomPlies, 4, "random plies played at the start of each autoplay game")
	fs.Int(ConfigAutoplayMaxPlies, 200, "plies after which an autoplay game is a draw")
	fs.String(ConfigAutoplayLogfile, "/tmp/kingme_autoplay.csv", "autoplay turn log")
	fs.Uint64(ConfigAutoplaySeed, 0, "seed for autoplay openings; 0 picks a random seed")
	fs.String(ConfigGamestorePath, "", "sqlite file autoplay saves finished games to; empty disables it")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")
	return fs
}

func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("kingme")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return v, nil
}

// DefaultConfig returns every setting at its default, ignoring flags, the
// environment and config files.
func DefaultConfig() *Config {
	v := viper.New()
	flagSet().VisitAll(func(f *pflag.Flag) {
		v.SetDefault(f.Name, f.DefValue)
	})
	return &Config{Viper: v}
}

// Load reads settings from args (--key=value), then KINGME_ environment
// variables, then the config file, then the defaults.
func (c *Config) Load(args []string) error {
	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	v, err := newViper(fs)
	if err != nil {
		return err
	}
	c.Viper = v

	if path := c.GetString(ConfigConfigFile); path != "" {
		c.SetConfigFile(path)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	} else {
		c.SetConfigName("kingme")
		c.SetConfigType("yaml")
		c.AddConfigPath(".")
		if err := c.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return err
			}
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	side := c.GetString(ConfigAISide)
	if side != "p1" && side != "p2" {
		return fmt.Errorf("%w: %s must be p1 or p2, not %q", ErrBadSetting, ConfigAISide, side)
	}
	if _, err := search.ParseVariant(c.GetString(ConfigAIKind)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBadSetting, ConfigAIKind, err)
	}
	for _, k := range []string{ConfigMinimaxDepth, ConfigAlphaBetaDepth} {
		if c.GetInt(k) < 0 {
			return fmt.Errorf("%w: %s cannot be negative", ErrBadSetting, k)
		}
	}
	return nil
}

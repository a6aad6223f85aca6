package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaultConfig(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigMinimaxDepth), 8)
	is.Equal(cfg.GetInt(ConfigAlphaBetaDepth), 6)
	is.Equal(cfg.GetString(ConfigAISide), "p2")
	is.Equal(cfg.GetString(ConfigAIKind), "alphabeta")
	is.Equal(cfg.GetBool(ConfigDebug), false)
	is.Equal(cfg.GetFloat64(ConfigCacheMemoryFraction), 0.25)
	is.Equal(cfg.GetString(ConfigGamestorePath), "")
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	t.Chdir(t.TempDir())
	cfg := &Config{}
	err := cfg.Load([]string{"--minimax-depth=3", "--debug", "--ai-side", "p1"})
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigMinimaxDepth), 3)
	is.Equal(cfg.GetInt(ConfigAlphaBetaDepth), 6)
	is.True(cfg.GetBool(ConfigDebug))
	is.Equal(cfg.GetString(ConfigAISide), "p1")
}

func TestLoadEnvironment(t *testing.T) {
	is := is.New(t)
	t.Chdir(t.TempDir())
	t.Setenv("KINGME_ALPHABETA_DEPTH", "4")
	t.Setenv("KINGME_AI_KIND", "minimax")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetInt(ConfigAlphaBetaDepth), 4)
	is.Equal(cfg.GetString(ConfigAIKind), "minimax")

	// flags win over the environment
	cfg = &Config{}
	is.NoErr(cfg.Load([]string{"--alphabeta-depth=2"}))
	is.Equal(cfg.GetInt(ConfigAlphaBetaDepth), 2)
}

func TestLoadConfigFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	t.Chdir(dir)
	err := os.WriteFile(filepath.Join(dir, "kingme.yaml"),
		[]byte("minimax-depth: 5\nautoplay-games: 3\n"), 0o644)
	is.NoErr(err)

	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetInt(ConfigMinimaxDepth), 5)
	is.Equal(cfg.GetInt(ConfigAutoplayGames), 3)

	other := filepath.Join(dir, "other.yaml")
	is.NoErr(os.WriteFile(other, []byte("minimax-depth: 7\n"), 0o644))
	cfg = &Config{}
	is.NoErr(cfg.Load([]string{"--config-file", other}))
	is.Equal(cfg.GetInt(ConfigMinimaxDepth), 7)

	cfg = &Config{}
	is.True(cfg.Load([]string{"--config-file", filepath.Join(dir, "missing.yaml")}) != nil)
}

func TestLoadRejectsBadSettings(t *testing.T) {
	is := is.New(t)
	t.Chdir(t.TempDir())
	for _, args := range [][]string{
		{"--ai-side=p3"},
		{"--ai-kind=random"},
		{"--minimax-depth=-1"},
	} {
		cfg := &Config{}
		err := cfg.Load(args)
		is.True(errors.Is(err, ErrBadSetting))
	}
	cfg := &Config{}
	is.True(cfg.Load([]string{"--no-such-flag"}) != nil)
}

package automatic

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/kingme/ai/player"
	"github.com/domino14/kingme/config"
	"github.com/domino14/kingme/gamestore"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigAlphaBetaDepth, 2)
	cfg.Set(config.ConfigMinimaxDepth, 2)
	cfg.Set(config.ConfigAutoplayMaxPlies, 40)
	cfg.Set(config.ConfigAutoplayRandomPlies, 2)
	return cfg
}

func TestPlayGame(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string, 100)
	r := NewGameRunner(logchan, testConfig(), workerRNG(7, 1))
	is.NoErr(r.Init("minimax", "alphabeta"))

	done := make(chan []string)
	go func() {
		var lines []string
		for msg := range logchan {
			lines = append(lines, msg)
		}
		done <- lines
	}()
	res := r.PlayGame()
	close(logchan)
	lines := <-done

	is.True(res.Plies > 2)
	is.True(res.Plies <= 40)
	is.Equal(res.P1Kind, "minimax")
	is.Equal(res.P2Kind, "alphabeta")
	is.Equal(len(lines), res.Plies-2)
	is.Equal(res.MoveNodes[0].Iterations()+res.MoveNodes[1].Iterations(), res.Plies-2)
	is.True(strings.HasPrefix(lines[0], "white,"+res.ID+",3,"))
	if res.Winner != WinnerDraw {
		is.True(res.Final.IsGameOver())
	}
}

func TestSeededGamesRepeat(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	ra := NewGameRunner(nil, cfg, workerRNG(42, 3))
	is.NoErr(ra.Init("alphabeta", "alphabeta"))
	rb := NewGameRunner(nil, cfg, workerRNG(42, 3))
	is.NoErr(rb.Init("alphabeta", "alphabeta"))
	a, b := ra.PlayGame(), rb.PlayGame()
	is.True(a.ID != b.ID)
	is.Equal(a.Plies, b.Plies)
	is.True(a.Final.Equals(b.Final))
}

func TestStartCompVCompGames(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	store, err := gamestore.Open(filepath.Join(dir, "games.db"))
	is.NoErr(err)
	defer store.Close()

	out := filepath.Join(dir, "autoplay.csv")
	summary, err := StartCompVCompGames(context.Background(), testConfig(), Options{
		NumGames:       4,
		Threads:        2,
		OutputFilename: out,
		Seed:           99,
		Store:          store,
	})
	is.NoErr(err)
	is.Equal(summary.Games, 4)
	is.Equal(summary.P1Wins+summary.P2Wins+summary.Draws, 4)
	is.True(summary.MeanPlies > 0)
	is.Equal(CVCCounter.Value(), int64(4))
	is.Equal(IsPlaying.Value(), int64(0))

	n, err := store.Count(context.Background())
	is.NoErr(err)
	is.Equal(n, 4)

	f, err := os.Open(out)
	is.NoErr(err)
	defer f.Close()
	sc := bufio.NewScanner(f)
	is.True(sc.Scan())
	is.Equal(sc.Text()+"\n", logHeader)
	rows := 0
	for sc.Scan() {
		is.Equal(len(strings.Split(sc.Text(), ",")), 10)
		rows++
	}
	is.True(rows > 0)
}

func TestCancelledBatch(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := StartCompVCompGames(ctx, testConfig(), Options{
		NumGames:       50,
		Threads:        1,
		OutputFilename: filepath.Join(t.TempDir(), "autoplay.csv"),
	})
	is.NoErr(err)
	is.True(summary.Games < 50)
}

func TestInitUnknownKind(t *testing.T) {
	is := is.New(t)
	r := NewGameRunner(nil, testConfig(), workerRNG(1, 1))
	is.True(errors.Is(r.Init("alphabeta", "negamax"), player.ErrUnknownPlayerKind))
}

func TestCancelMidBatch(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	CVCCounter.Set(0)
	go func() {
		for CVCCounter.Value() < 1 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()
	summary, err := StartCompVCompGames(ctx, testConfig(), Options{
		NumGames:       40,
		Threads:        1,
		OutputFilename: filepath.Join(t.TempDir(), "autoplay.csv"),
		Seed:           3,
	})
	is.NoErr(err)
	is.True(summary.Games >= 1)
	is.True(summary.Games < 40)
	is.Equal(IsPlaying.Value(), int64(0))
}

func TestStoreFailureStopsWorkers(t *testing.T) {
	is := is.New(t)
	store, err := gamestore.Open(filepath.Join(t.TempDir(), "games.db"))
	is.NoErr(err)
	is.NoErr(store.Close())

	summary, err := StartCompVCompGames(context.Background(), testConfig(), Options{
		NumGames:       40,
		Threads:        2,
		OutputFilename: filepath.Join(t.TempDir(), "autoplay.csv"),
		Seed:           4,
		Store:          store,
	})
	is.True(err != nil)
	is.True(summary == nil)
	is.True(CVCCounter.Value() < 40)
}

func TestSummary(t *testing.T) {
	is := is.New(t)
	s := Summarize([]*GameResult{
		{Winner: WinnerP1, Plies: 30, Nodes: 100},
		{Winner: WinnerP2, Plies: 50, Nodes: 300},
		{Winner: WinnerDraw, Plies: 40, Nodes: 200},
	})
	is.Equal(s.P1Wins, 1)
	is.Equal(s.P2Wins, 1)
	is.Equal(s.Draws, 1)
	is.Equal(s.MeanPlies, 40.0)
	is.Equal(s.StdevPlies, 10.0)
	is.Equal(s.MeanNodes, 200.0)
	is.Equal(s.WhiteScore.Mean(), 0.5)
	is.Equal(s.WhiteScore.Iterations(), 3)
	is.True(strings.Contains(s.String(), "white score: 0.500 +/- "))
	is.True(strings.Contains(s.String(), "game length histogram"))

	one := Summarize([]*GameResult{{Winner: WinnerP1, Plies: 12}})
	is.Equal(one.StdevPlies, 0.0)
	is.True(!strings.Contains(one.String(), "histogram"))
	is.Equal(Summarize(nil).Games, 0)
}

package automatic

// Data collection for automatic game. Allow computer vs computer games, etc.

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"expvar"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"lukechampine.com/frand"

	"github.com/domino14/kingme/config"
	"github.com/domino14/kingme/gamestore"
	"github.com/domino14/kingme/stats"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

var ErrGamesRunning = errors.New("games are already being played, please wait till complete")

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

const logHeader = "playerID,gameID,ply,move,value,nodes,whitemen,whitekings,blackmen,blackkings\n"

// Options for a batch of games. Zero values are taken from the config.
type Options struct {
	NumGames       int
	Threads        int
	P1Kind         string
	P2Kind         string
	OutputFilename string
	Seed           uint64
	Store          *gamestore.Store
}

func (o *Options) setDefaults(cfg *config.Config) {
	if o.NumGames <= 0 {
		o.NumGames = cfg.GetInt(config.ConfigAutoplayGames)
	}
	if o.Threads <= 0 {
		o.Threads = cfg.GetInt(config.ConfigAutoplayThreads)
	}
	if o.Threads <= 0 {
		o.Threads = 1
	}
	if o.P1Kind == "" {
		o.P1Kind = cfg.GetString(config.ConfigAIKind)
	}
	if o.P2Kind == "" {
		o.P2Kind = cfg.GetString(config.ConfigAIKind)
	}
	if o.OutputFilename == "" {
		o.OutputFilename = cfg.GetString(config.ConfigAutoplayLogfile)
	}
	if o.Seed == 0 {
		o.Seed = cfg.GetUint64(config.ConfigAutoplaySeed)
	}
}

// workerRNG gives each worker its own generator. A zero seed means a random
// one.
func workerRNG(seed uint64, worker int) *frand.RNG {
	if seed == 0 {
		return frand.NewCustom(frand.Bytes(32), 1024, 12)
	}
	s := make([]byte, 32)
	binary.LittleEndian.PutUint64(s, seed)
	binary.LittleEndian.PutUint64(s[8:], uint64(worker))
	return frand.NewCustom(s, 1024, 12)
}

// StartCompVCompGames plays a batch of games on opts.Threads workers and
// returns once all of them are done, or ctx is cancelled, in which case the
// summary covers the games finished so far. Every turn is written to the CSV
// file opts.OutputFilename, and every finished game to opts.Store if it is
// set. A failure to store a game stops every worker and is returned.
func StartCompVCompGames(ctx context.Context, cfg *config.Config, opts Options) (*Summary, error) {
	if IsPlaying.Value() > 0 {
		return nil, ErrGamesRunning
	}
	opts.setDefaults(cfg)

	logfile, err := os.Create(opts.OutputFilename)
	if err != nil {
		return nil, err
	}
	log.Debug().Msgf("Starting %v games, %v threads", opts.NumGames, opts.Threads)

	CVCCounter.Set(0)
	jobs := make(chan struct{}, 100)
	logChan := make(chan string, 100)
	results := make(chan *GameResult, opts.NumGames)
	loggerDone := make(chan struct{})

	go func() {
		defer close(loggerDone)
		logfile.WriteString(logHeader)
		for msg := range logChan {
			logfile.WriteString(msg)
		}
		logfile.Close()
		log.Debug().Msg("Exiting turn logger goroutine!")
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i := 1; i <= opts.Threads; i++ {
		g.Go(func() error {
			r := NewGameRunner(logChan, cfg, workerRNG(opts.Seed, i))
			if err := r.Init(opts.P1Kind, opts.P2Kind); err != nil {
				return err
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for {
				// a cancelled batch must not drain the queued jobs
				if gctx.Err() != nil {
					return nil
				}
				select {
				case <-gctx.Done():
					return nil
				case _, ok := <-jobs:
					if !ok {
						return nil
					}
				}
				res := r.PlayGame()
				CVCCounter.Add(1)
				if opts.Store != nil {
					rec, err := res.Record()
					if err != nil {
						return err
					}
					if err := opts.Store.SaveGame(gctx, rec); err != nil {
						return fmt.Errorf("saving game %s: %w", res.ID, err)
					}
				}
				results <- res
			}
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for i := 1; i < opts.NumGames+1; i++ {
			select {
			case jobs <- struct{}{}:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
		}
		log.Debug().Msg("Finished queueing all jobs.")
		return nil
	})

	err = g.Wait()
	close(logChan)
	<-loggerDone
	close(results)

	var all []*GameResult
	for res := range results {
		all = append(all, res)
	}
	log.Info().Int("games", len(all)).Msg("All games finished.")
	if err != nil {
		return nil, err
	}
	return Summarize(all), nil
}

// Summary aggregates a batch of games.
type Summary struct {
	Games      int
	P1Wins     int
	P2Wins     int
	Draws      int
	MeanPlies  float64
	StdevPlies float64
	MeanNodes  float64
	// WhiteScore counts a white win as 1, a draw as 0.5 and a loss as 0.
	WhiteScore stats.Statistic
	MoveNodes  [2]stats.Statistic
	plies      []float64
}

func Summarize(results []*GameResult) *Summary {
	s := &Summary{Games: len(results)}
	nodes := make([]float64, 0, len(results))
	for _, r := range results {
		switch r.Winner {
		case WinnerP1:
			s.P1Wins++
			s.WhiteScore.Push(1)
		case WinnerP2:
			s.P2Wins++
			s.WhiteScore.Push(0)
		default:
			s.Draws++
			s.WhiteScore.Push(0.5)
		}
		s.MoveNodes[0].Merge(&r.MoveNodes[0])
		s.MoveNodes[1].Merge(&r.MoveNodes[1])
		s.plies = append(s.plies, float64(r.Plies))
		nodes = append(nodes, float64(r.Nodes))
	}
	if len(results) == 0 {
		return s
	}
	s.MeanPlies, s.StdevPlies = stat.MeanStdDev(s.plies, nil)
	if len(results) < 2 || math.IsNaN(s.StdevPlies) {
		s.StdevPlies = 0
	}
	s.MeanNodes = stat.Mean(nodes, nil)
	return s
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "games: %d  white wins: %d  black wins: %d  draws: %d\n",
		s.Games, s.P1Wins, s.P2Wins, s.Draws)
	fmt.Fprintf(&sb, "plies: mean %.1f stdev %.1f  nodes per game: mean %.0f\n",
		s.MeanPlies, s.StdevPlies, s.MeanNodes)
	if s.Games > 0 {
		fmt.Fprintf(&sb, "white score: %.3f +/- %.3f (95%%)\n",
			s.WhiteScore.Mean(), s.WhiteScore.Interval(95))
		fmt.Fprintf(&sb, "nodes per move: white %.0f  black %.0f\n",
			s.MoveNodes[0].Mean(), s.MoveNodes[1].Mean())
	}
	if len(s.plies) > 1 && slices.Min(s.plies) < slices.Max(s.plies) {
		var buf bytes.Buffer
		hist := histogram.Hist(min(10, len(s.plies)), s.plies)
		if err := histogram.Fprint(&buf, hist, histogram.Linear(40)); err == nil {
			sb.WriteString("game length histogram:\n")
			sb.Write(buf.Bytes())
		}
	}
	return sb.String()
}

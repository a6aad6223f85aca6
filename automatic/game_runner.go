// Package automatic plays computer against computer games, for testing the
// players against each other and collecting statistics.
package automatic

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/kingme/ai/player"
	"github.com/domino14/kingme/board"
	"github.com/domino14/kingme/config"
	"github.com/domino14/kingme/game"
	"github.com/domino14/kingme/gamestore"
	"github.com/domino14/kingme/stats"
)

const (
	WinnerP1   = "white"
	WinnerP2   = "black"
	WinnerDraw = "draw"
)

// GameResult summarizes one finished game.
type GameResult struct {
	ID        string
	P1Kind    string
	P2Kind    string
	Winner    string
	Plies     int
	Nodes     uint64
	// MoveNodes holds the nodes searched per decision, for white and black.
	MoveNodes [2]stats.Statistic
	Final     *game.Game
	StartedAt time.Time
	EndedAt   time.Time
}

// Record converts the result for the game store.
func (gr *GameResult) Record() (gamestore.GameRecord, error) {
	pos, err := gr.Final.MarshalPositionYAML()
	if err != nil {
		return gamestore.GameRecord{}, err
	}
	return gamestore.GameRecord{
		ID:        gr.ID,
		P1Kind:    gr.P1Kind,
		P2Kind:    gr.P2Kind,
		Winner:    gr.Winner,
		Plies:     gr.Plies,
		Position:  string(pos),
		StartedAt: gr.StartedAt,
		EndedAt:   gr.EndedAt,
	}, nil
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game    *game.Game
	gameID  string
	config  *config.Config
	logchan chan string
	rng     *frand.RNG

	kinds       [2]string
	players     [2]*player.ComputerPlayer
	randomPlies int
	maxPlies    int

	plies     int
	nodes     uint64
	moveNodes [2]stats.Statistic
	startedAt time.Time
}

// NewGameRunner returns a runner without players; Init must be called
// before PlayGame.
func NewGameRunner(logchan chan string, cfg *config.Config, rng *frand.RNG) *GameRunner {
	return &GameRunner{
		logchan:     logchan,
		config:      cfg,
		rng:         rng,
		randomPlies: cfg.GetInt(config.ConfigAutoplayRandomPlies),
		maxPlies:    cfg.GetInt(config.ConfigAutoplayMaxPlies),
	}
}

// Init sets the kind of the white (p1) and black (p2) players.
func (r *GameRunner) Init(p1kind, p2kind string) error {
	for idx, kind := range []string{p1kind, p2kind} {
		p, err := player.NewComputerPlayer(kind, idx == 1, r.config)
		if err != nil {
			return err
		}
		r.players[idx] = p
		r.kinds[idx] = kind
	}
	return nil
}

func (r *GameRunner) StartGame() {
	r.game = game.NewGame()
	r.gameID = uuid.New().String()
	r.plies = 0
	r.nodes = 0
	r.moveNodes = [2]stats.Statistic{}
	r.startedAt = time.Now()
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// playRandomOpening plays the configured number of random plies so that
// two deterministic players do not repeat the same game.
func (r *GameRunner) playRandomOpening() {
	for i := 0; i < r.randomPlies && !r.game.IsGameOver(); i++ {
		moves := r.game.LegalMoves()
		m := moves[r.rng.Intn(len(moves))]
		r.game.Move(m[0], m[1])
		r.plies++
	}
}

// PlayTurn lets the player on turn move. It returns false if the player did
// not change the position.
func (r *GameRunner) PlayTurn() bool {
	idx := 0
	if r.game.IsP2Turn() {
		idx = 1
	}
	before := r.game.Key()
	p := r.players[idx]
	p.UpdateGame(r.game)
	if r.game.Key() == before {
		return false
	}
	r.plies++

	res := p.Solver().LastResult()
	if res == nil {
		return true
	}
	r.nodes += res.Stats.Nodes
	r.moveNodes[idx].Push(float64(res.Stats.Nodes))
	if r.logchan != nil {
		b := r.game.Board()
		r.logchan <- fmt.Sprintf("%s,%s,%d,%s,%d,%d,%d,%d,%d,%d\n",
			game.SideName(idx == 1),
			r.gameID,
			r.plies,
			res.Move.ShortDescription(),
			res.Value,
			res.Stats.Nodes,
			b.Count(board.WhiteMan),
			b.Count(board.WhiteKing),
			b.Count(board.BlackMan),
			b.Count(board.BlackKing))
	}
	return true
}

// PlayGame plays a whole game: a random opening, then the players, until
// one side cannot move or the ply limit is reached.
func (r *GameRunner) PlayGame() *GameResult {
	r.StartGame()
	r.playRandomOpening()
	for !r.game.IsGameOver() && r.plies < r.maxPlies {
		if !r.PlayTurn() {
			log.Warn().Str("game-id", r.gameID).Int("ply", r.plies).Msg("player-did-not-move")
			break
		}
	}
	winner := WinnerDraw
	if p2, over := r.game.Winner(); over {
		winner = WinnerP1
		if p2 {
			winner = WinnerP2
		}
	}
	log.Debug().Str("game-id", r.gameID).Str("winner", winner).Int("plies", r.plies).
		Msg("game-over")
	return &GameResult{
		ID:        r.gameID,
		P1Kind:    r.kinds[0],
		P2Kind:    r.kinds[1],
		Winner:    winner,
		Plies:     r.plies,
		Nodes:     r.nodes,
		MoveNodes: r.moveNodes,
		Final:     r.game,
		StartedAt: r.startedAt,
		EndedAt:   time.Now(),
	}
}

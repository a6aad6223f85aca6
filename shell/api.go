package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/kingme/ai/player"
	"github.com/domino14/kingme/automatic"
	"github.com/domino14/kingme/config"
	"github.com/domino14/kingme/equity"
	"github.com/domino14/kingme/game"
	"github.com/domino14/kingme/gamestore"
	"github.com/domino14/kingme/move"
	"github.com/domino14/kingme/search"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Uint64Default(key string, defaultU uint64) (uint64, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultU, nil
	}
	u, err := strconv.ParseUint(v[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a non-negative integer, not %q", key, v[0])
	}
	return u, nil
}

// depth reads -depth: a non-negative number, or "default" for the
// configured depth, which is returned as -1.
func (c CmdOptions) depth(defaultD int) (int, error) {
	v := c.String("depth")
	switch v {
	case "":
		return defaultD, nil
	case "default":
		return -1, nil
	}
	d, err := strconv.Atoi(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("depth must be a non-negative integer or default, not %q", v)
	}
	return d, nil
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) aiIndex() int {
	if sc.aiP2 {
		return 1
	}
	return 0
}

func (sc *ShellController) computerPlayer(forP2 bool) (*player.ComputerPlayer, error) {
	p, err := player.NewComputerPlayer(sc.aiKind, forP2, sc.config)
	if err != nil {
		return nil, err
	}
	if sc.aiDepth >= 0 {
		p.Solver().SetMaxDepth(sc.aiDepth)
	}
	return p, nil
}

func (sc *ShellController) setupPlayers() error {
	p, err := sc.computerPlayer(sc.aiP2)
	if err != nil {
		return err
	}
	sc.players[sc.aiIndex()] = p
	sc.players[1-sc.aiIndex()] = player.HumanPlayer{}
	return nil
}

func (sc *ShellController) newGame() error {
	if err := sc.setupPlayers(); err != nil {
		return err
	}
	sc.game = game.NewGame()
	sc.lastResult = nil
	return nil
}

// computerMoves lets the computer play for as long as it is on turn, which
// is more than once during a multi-jump.
func (sc *ShellController) computerMoves() []string {
	var played []string
	cp, ok := sc.players[sc.aiIndex()].(*player.ComputerPlayer)
	if !ok {
		return nil
	}
	for !sc.game.IsGameOver() && sc.game.IsP2Turn() == sc.aiP2 {
		before := sc.game.Key()
		cp.UpdateGame(sc.game)
		res := cp.Solver().LastResult()
		if sc.game.Key() == before || res == nil || res.Move == nil {
			break
		}
		sc.lastResult = res
		played = append(played, fmt.Sprintf("%s plays %s (value %s)",
			game.SideName(sc.aiP2), res.Move.ShortDescription(), scoreString(res.Value)))
	}
	return played
}

func scoreString(v int) string {
	switch v {
	case search.WinScore:
		return "win"
	case search.LossScore:
		return "loss"
	}
	return strconv.Itoa(v)
}

func (sc *ShellController) withBoard(lines []string) *Response {
	lines = append(lines, sc.game.ToDisplayText())
	return msg(strings.Join(lines, "\n"))
}

func (sc *ShellController) newCmd(cmd *shellcmd) (*Response, error) {
	if err := sc.newGame(); err != nil {
		return nil, err
	}
	return sc.withBoard(sc.computerMoves()), nil
}

// parseMove accepts "21 17", "21-17" and "21x14".
func parseMove(args []string) (int, int, error) {
	if len(args) == 1 {
		args = strings.FieldsFunc(args[0], func(r rune) bool {
			return r == '-' || r == 'x' || r == 'X'
		})
	}
	if len(args) != 2 {
		return 0, 0, errors.New("usage: play <from> <to>")
	}
	start, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad cell %q", args[0])
	}
	end, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad cell %q", args[1])
	}
	return start, end, nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game.IsGameOver() {
		return nil, game.ErrGameOver
	}
	start, end, err := parseMove(cmd.args)
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(start, end); err != nil {
		return nil, err
	}
	return sc.withBoard(sc.computerMoves()), nil
}

func (sc *ShellController) goCmd(cmd *shellcmd) (*Response, error) {
	if sc.game.IsGameOver() {
		return nil, game.ErrGameOver
	}
	if sc.game.IsP2Turn() != sc.aiP2 {
		return nil, fmt.Errorf("it is %s's turn, the computer plays %s",
			game.SideName(sc.game.IsP2Turn()), game.SideName(sc.aiP2))
	}
	return sc.withBoard(sc.computerMoves()), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	cands := search.GenerateCandidates(sc.game, equity.NewPositionEvaluator())
	if len(cands) == 0 {
		return msg("no legal moves"), nil
	}
	lines := lo.Map(cands, func(m *move.Move, i int) string {
		return fmt.Sprintf("%2d. %-8s %6d", i+1, m.ShortDescription(), m.Valuation())
	})
	return msg(strings.Join(lines, "\n")), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if sc.game.IsGameOver() {
		return nil, game.ErrGameOver
	}
	kind := cmd.options.String("kind")
	if kind == "" {
		kind = sc.aiKind
	}
	p, err := player.NewComputerPlayer(kind, sc.game.IsP2Turn(), sc.config)
	if err != nil {
		return nil, err
	}
	depth, err := cmd.options.depth(sc.aiDepth)
	if err != nil {
		return nil, err
	}
	if depth >= 0 {
		p.Solver().SetMaxDepth(depth)
	}
	res := p.Solver().Solve(sc.game)
	sc.lastResult = res

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s search to depth %d for %s\n", kind, p.Solver().MaxDepth(),
		game.SideName(sc.game.IsP2Turn()))
	fmt.Fprintf(&sb, "value: %s\n", scoreString(res.Value))
	best := "(none)"
	if res.Move != nil {
		best = res.Move.ShortDescription()
	}
	fmt.Fprintf(&sb, "best move: %s\n", best)
	for _, cs := range res.Children {
		score := "-"
		if cs.Known {
			score = scoreString(cs.Score)
		}
		fmt.Fprintf(&sb, "  %-8s %s\n", cs.Move.ShortDescription(), score)
	}
	fmt.Fprintf(&sb, "%s (%v)", res.Stats.String(), res.Elapsed)
	return msg(sb.String()), nil
}

func (sc *ShellController) ai(cmd *shellcmd) (*Response, error) {
	depth, err := cmd.options.depth(sc.aiDepth)
	if err != nil {
		return nil, err
	}
	if len(cmd.args) > 0 {
		if _, err := search.ParseVariant(cmd.args[0]); err != nil {
			return nil, err
		}
		sc.aiKind = cmd.args[0]
	}
	sc.aiDepth = depth
	if err := sc.setupPlayers(); err != nil {
		return nil, err
	}
	cp := sc.players[sc.aiIndex()].(*player.ComputerPlayer)
	return msg(fmt.Sprintf("computer plays %s with %s to depth %d",
		game.SideName(sc.aiP2), sc.aiKind, cp.Solver().MaxDepth())), nil
}

func (sc *ShellController) side(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: side p1|p2")
	}
	switch cmd.args[0] {
	case "p1", "white":
		sc.aiP2 = false
	case "p2", "black":
		sc.aiP2 = true
	default:
		return nil, fmt.Errorf("unknown side %q", cmd.args[0])
	}
	if err := sc.setupPlayers(); err != nil {
		return nil, err
	}
	return msg("computer plays " + game.SideName(sc.aiP2)), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <file>")
	}
	g, err := game.LoadPositionYAML(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.game = g
	sc.lastResult = nil
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: save <file>")
	}
	if err := sc.game.SavePositionYAML(cmd.args[0]); err != nil {
		return nil, err
	}
	return msg("saved position to " + cmd.args[0]), nil
}

func (sc *ShellController) openStore(path string) (*gamestore.Store, error) {
	if path == "" {
		path = sc.config.GetString(config.ConfigGamestorePath)
	}
	if sc.store != nil || path == "" {
		return sc.store, nil
	}
	s, err := gamestore.Open(path)
	if err != nil {
		return nil, err
	}
	sc.store = s
	return s, nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	opts := automatic.Options{OutputFilename: cmd.options.String("file")}
	if len(cmd.args) == 2 {
		opts.P1Kind, opts.P2Kind = cmd.args[0], cmd.args[1]
	} else if len(cmd.args) != 0 {
		return nil, errors.New("usage: autoplay [p1kind p2kind] [-games n] [-threads n] [-file f] [-db f]")
	}
	var err error
	if opts.NumGames, err = cmd.options.IntDefault("games", 0); err != nil {
		return nil, err
	}
	if opts.Threads, err = cmd.options.IntDefault("threads", 0); err != nil {
		return nil, err
	}
	if opts.Seed, err = cmd.options.Uint64Default("seed", 0); err != nil {
		return nil, err
	}
	if opts.Store, err = sc.openStore(cmd.options.String("db")); err != nil {
		return nil, err
	}
	summary, err := automatic.StartCompVCompGames(context.Background(), sc.config, opts)
	if err != nil {
		return nil, err
	}
	return msg(summary.String()), nil
}

func (sc *ShellController) games(cmd *shellcmd) (*Response, error) {
	s, err := sc.openStore(cmd.options.String("db"))
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("no game store; pass -db or set gamestore-path")
	}
	n, err := cmd.options.IntDefault("n", 10)
	if err != nil {
		return nil, err
	}
	recs, err := s.ListGames(context.Background(), n)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return msg("no games stored"), nil
	}
	lines := lo.Map(recs, func(r gamestore.GameRecord, _ int) string {
		return fmt.Sprintf("%s  %s vs %s  %-5s  %3d plies  %s",
			r.ID, r.P1Kind, r.P2Kind, r.Winner, r.Plies, r.EndedAt.Format("2006-01-02 15:04:05"))
	})
	return msg(strings.Join(lines, "\n")), nil
}

func (sc *ShellController) stats(cmd *shellcmd) (*Response, error) {
	if sc.lastResult == nil {
		return msg("no search has been run yet"), nil
	}
	return msg(sc.lastResult.Stats.String()), nil
}

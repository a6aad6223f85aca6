package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/kingme/ai/player"
	"github.com/domino14/kingme/config"
	"github.com/domino14/kingme/game"
	"github.com/domino14/kingme/gamestore"
	"github.com/domino14/kingme/search"
)

var (
	errNoData            = errors.New("no data in line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("sending quit signal")
)

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	game    *game.Game
	players [2]player.Player
	aiP2    bool
	aiKind  string
	aiDepth int // negative means the configured depth

	lastResult *search.Result
	store      *gamestore.Store

	execPath   string
	gitVersion string
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// newController sets up a controller writing to out, without a terminal.
func newController(cfg *config.Config, out io.Writer) (*ShellController, error) {
	sc := &ShellController{
		out:     out,
		config:  cfg,
		aiP2:    cfg.GetString(config.ConfigAISide) != "p1",
		aiKind:  cfg.GetString(config.ConfigAIKind),
		aiDepth: -1,
	}
	if err := sc.newGame(); err != nil {
		return nil, err
	}
	return sc, nil
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) (*ShellController, error) {
	prompt := "kingme"
	if gitVersion != "" {
		prompt += " " + gitVersion
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31m" + prompt + ">\033[0m ",
		HistoryFile:     "/tmp/kingme_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc, err := newController(cfg, l.Stderr())
	if err != nil {
		l.Close()
		return nil, err
	}
	sc.l = l
	sc.execPath = execPath
	sc.gitVersion = gitVersion
	l.Config.AutoComplete = NewShellCompleter(sc)
	return sc, nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") && len(fields[idx]) > 1 {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := fields[idx][1:]
			options[key] = append(options[key], fields[idx+1])
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		if sig != nil {
			sig <- syscall.SIGINT
		}
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newCmd(cmd)
	case "show", "s":
		return msg(sc.game.ToDisplayText()), nil
	case "moves":
		return sc.moves(cmd)
	case "play":
		return sc.play(cmd)
	case "go":
		return sc.goCmd(cmd)
	case "solve":
		return sc.solve(cmd)
	case "ai":
		return sc.ai(cmd)
	case "side":
		return sc.side(cmd)
	case "load":
		return sc.load(cmd)
	case "save":
		return sc.save(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "games":
		return sc.games(cmd)
	case "stats":
		return sc.stats(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, fmt.Errorf("unknown command %q; try help", cmd.cmd)
	}
}

// Execute runs a single line, as given on the command line.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(line, sig)
	if err != nil {
		if !errors.Is(err, errQuit) {
			sc.showError(err)
		}
		return
	}
	if resp != nil {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	sc.showMessage(sc.game.ToDisplayText())
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.standardModeSwitch(line, sig)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup releases what the shell opened.
func (sc *ShellController) Cleanup() {
	if sc.store != nil {
		if err := sc.store.Close(); err != nil {
			log.Err(err).Msg("closing-gamestore")
		}
		sc.store = nil
	}
}

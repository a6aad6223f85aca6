package shell

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/kingme/game"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var aiKinds = []string{"minimax", "alphabeta"}

var commandMetadata = map[string]CommandMetadata{
	"solve": {
		Options: []string{"-kind", "-depth"},
	},
	"ai": {
		Options: []string{"-depth"},
		Args:    aiKinds,
	},
	"side": {
		Args: []string{"p1", "p2"},
	},
	"autoplay": {
		Options: []string{"-games", "-threads", "-file", "-db", "-seed"},
		Args:    aiKinds,
	},
	"games": {
		Options: []string{"-n", "-db"},
	},
	"help": {
		Args: []string{"play", "solve", "ai", "autoplay", "games", "load"},
	},
}

var commandNames = []string{
	"help", "new", "show", "s", "moves", "play", "go", "solve", "ai", "side",
	"load", "save", "autoplay", "games", "stats", "exit", "bye",
}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case lastCompleteField == "-kind":
			completions = aiKinds
		case cmdName == "play" && len(fields) <= 2 && c.sc.game != nil:
			completions = legalMoveStrings(c.sc.game)
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}

// legalMoveStrings lists the moves of the side to move as play arguments.
func legalMoveStrings(g *game.Game) []string {
	sep := "-"
	if g.HasSkip() {
		sep = "x"
	}
	moves := g.LegalMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, strconv.Itoa(m[0])+sep+strconv.Itoa(m[1]))
	}
	return out
}

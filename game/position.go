package game

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domino14/kingme/board"
)

// positionYAML is the on-disk form of a position:
//
//	turn: black
//	skip: 14
//	rows:
//	  - ".-.-.-.-"
//	  ...
type positionYAML struct {
	Turn string   `yaml:"turn"`
	Skip *int     `yaml:"skip,omitempty"`
	Rows []string `yaml:"rows"`
}

// ParsePositionYAML reads a position written by MarshalPositionYAML.
func ParsePositionYAML(data []byte) (*Game, error) {
	var py positionYAML
	if err := yaml.Unmarshal(data, &py); err != nil {
		return nil, fmt.Errorf("parsing position: %w", err)
	}
	b, err := board.Parse(py.Rows)
	if err != nil {
		return nil, err
	}
	var p2 bool
	switch strings.ToLower(py.Turn) {
	case "white", "p1", "":
	case "black", "p2":
		p2 = true
	default:
		return nil, fmt.Errorf("parsing position: unknown side %q", py.Turn)
	}
	skip := NoSkip
	if py.Skip != nil {
		skip = *py.Skip
		if skip != NoSkip && !board.IsValidIndex(skip) {
			return nil, fmt.Errorf("parsing position: skip index %d out of range", skip)
		}
	}
	return NewGameFromBoard(b, p2, skip), nil
}

// LoadPositionYAML reads a position from a file.
func LoadPositionYAML(path string) (*Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePositionYAML(data)
}

func (g *Game) MarshalPositionYAML() ([]byte, error) {
	py := positionYAML{
		Turn: SideName(g.p2Turn),
		Rows: g.board.Rows(),
	}
	if g.skipIndex != NoSkip {
		skip := g.skipIndex
		py.Skip = &skip
	}
	return yaml.Marshal(&py)
}

// SavePositionYAML writes the position to a file.
func (g *Game) SavePositionYAML(path string) error {
	data, err := g.MarshalPositionYAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Package puzzlefile reads the TOML clue-file format consumed by the
// CLI. It is an external collaborator: it constructs clue.Description
// values for nonogrid.New to consume, but the core packages never
// import it back.
//
// A puzzle file looks like:
//
//	[clues]
//	rows = "1,1; 1,1; 3"
//	columns = "3; 1; 3"
//
// Each line's blocks are comma-separated, lines are separated by
// semicolons. An optional [colors] table maps names to color IDs for
// multicolor puzzles; a block may then be written "count:colorname"
// instead of a bare count.
package puzzlefile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tsionyx/nonogrid/internal/clue"
	"github.com/tsionyx/nonogrid/internal/color"
)

type fileFormat struct {
	Clues struct {
		Rows    string `toml:"rows"`
		Columns string `toml:"columns"`
	} `toml:"clues"`
	Colors map[string]uint `toml:"colors"`
}

// Puzzle is the result of reading one puzzle file.
type Puzzle struct {
	Rows    []clue.Description
	Columns []clue.Description
	Colors  map[string]color.ID
}

// Load reads and parses the puzzle file at path.
func Load(path string) (*Puzzle, error) {
	var f fileFormat
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("puzzlefile: reading %s: %w", path, err)
	}
	return decode(f)
}

func decode(f fileFormat) (*Puzzle, error) {
	colors := make(map[string]color.ID, len(f.Colors))
	for name, id := range f.Colors {
		colors[name] = color.ID(id)
	}

	rows, err := parseLines(f.Clues.Rows, colors)
	if err != nil {
		return nil, fmt.Errorf("puzzlefile: rows: %w", err)
	}
	cols, err := parseLines(f.Clues.Columns, colors)
	if err != nil {
		return nil, fmt.Errorf("puzzlefile: columns: %w", err)
	}

	return &Puzzle{Rows: rows, Columns: cols, Colors: colors}, nil
}

func parseLines(s string, colors map[string]color.ID) ([]clue.Description, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	raw := strings.Split(s, ";")
	out := make([]clue.Description, len(raw))
	for i, line := range raw {
		d, err := parseLine(line, colors)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		out[i] = d
	}
	return out, nil
}

func parseLine(s string, colors map[string]color.ID) (clue.Description, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return clue.New(nil), nil
	}

	parts := strings.Split(s, ",")
	blocks := make([]clue.Block, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		sizeStr, colorName, hasColor := strings.Cut(part, ":")

		n, err := strconv.Atoi(strings.TrimSpace(sizeStr))
		if err != nil {
			return clue.Description{}, fmt.Errorf("bad block %q: %w", part, err)
		}

		id := color.FilledID
		if hasColor {
			colorName = strings.TrimSpace(colorName)
			cid, ok := colors[colorName]
			if !ok {
				return clue.Description{}, fmt.Errorf("unknown color %q", colorName)
			}
			id = cid
		}

		blocks = append(blocks, clue.Block{Size: n, Color: id})
	}

	return clue.New(blocks), nil
}

package puzzlefile

import (
	"testing"

	"github.com/BurntSushi/toml"
)

func TestDecodeBinary(t *testing.T) {
	doc := `
[clues]
rows = "1,1; 1,1; 3"
columns = "3; 1; 3"
`
	var f fileFormat
	if _, err := toml.Decode(doc, &f); err != nil {
		t.Fatalf("toml.Decode: %v", err)
	}

	p, err := decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(p.Rows) != 3 || len(p.Columns) != 3 {
		t.Fatalf("got %d rows, %d columns, want 3 and 3", len(p.Rows), len(p.Columns))
	}
	if p.Rows[0].Len() != 2 || p.Rows[2].Len() != 1 {
		t.Fatalf("unexpected row clue shapes: %v", p.Rows)
	}
}

func TestDecodeMulticolor(t *testing.T) {
	doc := `
[clues]
rows = "2:red, 1:blue"
columns = "1:red; 1:red; 1:blue"

[colors]
red = 2
blue = 4
`
	var f fileFormat
	if _, err := toml.Decode(doc, &f); err != nil {
		t.Fatalf("toml.Decode: %v", err)
	}

	p, err := decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got := p.Rows[0].Blocks[0].Color; got != 2 {
		t.Errorf("red block color = %v, want 2", got)
	}
	if got := p.Rows[0].Blocks[1].Color; got != 4 {
		t.Errorf("blue block color = %v, want 4", got)
	}
}

func TestDecodeUnknownColor(t *testing.T) {
	doc := `
[clues]
rows = "1:green"
columns = "1"
`
	var f fileFormat
	if _, err := toml.Decode(doc, &f); err != nil {
		t.Fatalf("toml.Decode: %v", err)
	}

	if _, err := decode(f); err == nil {
		t.Fatal("expected an error for an undefined color name")
	}
}

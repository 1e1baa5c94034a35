// Package clue implements the block and description (clue) model
// that rows and columns are checked against: an ordered list of
// run-lengths (and, for multicolor puzzles, colors) that a line must
// satisfy.
package clue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsionyx/nonogrid/internal/color"
)

// Block is one contiguous run of a single non-blank color.
type Block struct {
	Size  int
	Color color.ID
}

// Description is the ordered clue for a single row or column.
// Zero-length blocks are stripped at construction, matching the
// original project's handling of malformed or normalized clue input.
type Description struct {
	Blocks []Block
}

// New builds a Description, dropping any zero-size blocks.
func New(blocks []Block) Description {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Size > 0 {
			out = append(out, b)
		}
	}
	return Description{Blocks: out}
}

// NewBinary is a convenience constructor for the two-color domain,
// where every block is implicitly FilledID.
func NewBinary(sizes []int) Description {
	blocks := make([]Block, len(sizes))
	for i, s := range sizes {
		blocks[i] = Block{Size: s, Color: color.FilledID}
	}
	return New(blocks)
}

// Len returns the number of blocks.
func (d Description) Len() int { return len(d.Blocks) }

// MinLength is the shortest line capable of holding every block in
// order, including the mandatory separator between two consecutive
// blocks of the same color.
func (d Description) MinLength() int {
	if len(d.Blocks) == 0 {
		return 0
	}
	sums := d.PartialSums()
	return sums[len(sums)-1]
}

// PartialSums returns, for each block index i, the minimum line
// length needed to accommodate blocks[0..=i] packed as tightly as
// possible: one mandatory blank between two blocks of the same
// color, zero between blocks of different colors.
func (d Description) PartialSums() []int {
	sums := make([]int, len(d.Blocks))
	total := 0
	for i, b := range d.Blocks {
		if i > 0 && d.Blocks[i-1].Color == b.Color {
			total++
		}
		total += b.Size
		sums[i] = total
	}
	return sums
}

// RequiresTrailingBlank reports whether block index i (0-based) must
// be followed by a mandatory blank before the next block, i.e.
// whether block i+1 exists and shares block i's color.
func (d Description) RequiresTrailingBlank(i int) bool {
	if i+1 >= len(d.Blocks) {
		return false
	}
	return d.Blocks[i].Color == d.Blocks[i+1].Color
}

// Key returns a comparable representation suitable for deduplicating
// identical clues across lines, so equal clues can share one cache
// slot.
func (d Description) Key() string {
	var sb strings.Builder
	for i, b := range d.Blocks {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(b.Size))
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatUint(uint64(b.Color), 10))
	}
	return sb.String()
}

func (d Description) String() string {
	parts := make([]string, len(d.Blocks))
	for i, b := range d.Blocks {
		parts[i] = fmt.Sprintf("%d", b.Size)
	}
	return strings.Join(parts, ",")
}

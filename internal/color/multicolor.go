package color

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Multi is a possibility set over more than two colors, backed by a
// bitset so the palette isn't capped to a machine word's width. Bit
// position i stands for color ID 1<<i.
type Multi struct {
	set *bitset.BitSet
}

// MultiDomain constructs Undefined multi-color cells over a fixed
// palette of color IDs (which must include BlankID).
type MultiDomain struct {
	all    *bitset.BitSet
	colors int
}

// NewMultiDomain builds a domain spanning the given color IDs.
func NewMultiDomain(ids []ID) *MultiDomain {
	all := bitset.New(uint(len(ids)))
	for _, id := range ids {
		all.Set(bitOf(id))
	}
	return &MultiDomain{all: all, colors: len(ids)}
}

func (d *MultiDomain) Undefined() Cell { return &Multi{set: d.all.Clone()} }
func (d *MultiDomain) NumColors() int  { return d.colors }

func (d *MultiDomain) Singleton(id ID) Cell { return newMulti(id) }

func (d *MultiDomain) FromIDs(ids []ID) Cell {
	if len(ids) == 0 {
		return d.Undefined()
	}
	return newMulti(ids...)
}

func bitOf(id ID) uint {
	return uint(bits.TrailingZeros(uint(id)))
}

func idOfBit(i uint) ID {
	return ID(1) << i
}

func newMulti(ids ...ID) *Multi {
	var top uint
	for _, id := range ids {
		if b := bitOf(id); b+1 > top {
			top = b + 1
		}
	}
	s := bitset.New(top)
	for _, id := range ids {
		s.Set(bitOf(id))
	}
	return &Multi{set: s}
}

func (m *Multi) IsSolved() bool {
	return m.set.Count() == 1
}

func (m *Multi) CanBeBlank() bool {
	return m.CanBe(BlankID)
}

func (m *Multi) CanBe(id ID) bool {
	return m.set.Test(bitOf(id))
}

func (m *Multi) AddColor(id ID) Cell {
	clone := m.set.Clone()
	clone.Set(bitOf(id))
	return &Multi{set: clone}
}

func (m *Multi) Subtract(bad Cell) (Cell, error) {
	if m.IsSolved() {
		return nil, ErrAlreadySolved
	}

	clone := m.set.Clone()
	for _, id := range bad.Variants() {
		clone.Clear(bitOf(id))
	}
	if clone.None() {
		return nil, ErrEmptyDomain
	}
	return &Multi{set: clone}, nil
}

func (m *Multi) Variants() []ID {
	ids := make([]ID, 0, m.set.Count())
	for i, ok := m.set.NextSet(0); ok; i, ok = m.set.NextSet(i + 1) {
		ids = append(ids, idOfBit(i))
	}
	return ids
}

// SolutionRate implements (N-n)/(N-1): a fully unconstrained cell
// (n == N) scores 0, a solved cell (n == 1) scores 1.
func (m *Multi) SolutionRate(numColors int) float64 {
	if numColors <= 1 {
		return 1
	}
	n := float64(m.set.Count())
	return (float64(numColors) - n) / (float64(numColors) - 1)
}

func (m *Multi) String() string {
	if m.IsSolved() {
		ids := m.Variants()
		return strconv.FormatUint(uint64(ids[0]), 10)
	}
	return "?"
}

// Key renders every possible color, in ascending order (Variants
// already walks the bitset low bit first), so that two cells with
// different remaining possibilities never collide even though both
// display as "?".
func (m *Multi) Key() string {
	var sb strings.Builder
	for _, id := range m.Variants() {
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
		sb.WriteByte('|')
	}
	return sb.String()
}

package clue

import (
	"reflect"
	"testing"

	"github.com/tsionyx/nonogrid/internal/color"
)

func TestNewStripsZeroBlocks(t *testing.T) {
	d := New([]Block{{Size: 0, Color: color.FilledID}, {Size: 3, Color: color.FilledID}})
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}
}

func TestPartialSums(t *testing.T) {
	cases := []struct {
		sizes []int
		want  []int
	}{
		{nil, nil},
		{[]int{3}, []int{3}},
		{[]int{4, 2}, []int{4, 7}},
		{[]int{1, 1, 5}, []int{1, 3, 8}},
	}

	for _, tc := range cases {
		d := NewBinary(tc.sizes)
		got := d.PartialSums()
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("PartialSums(%v) = %v, want %v", tc.sizes, got, tc.want)
		}
	}
}

func TestRequiresTrailingBlankSameColorOnly(t *testing.T) {
	d := New([]Block{
		{Size: 2, Color: 2},
		{Size: 1, Color: 4},
		{Size: 3, Color: 4},
	})

	if d.RequiresTrailingBlank(0) {
		t.Error("different colored blocks should not require a trailing blank")
	}
	if !d.RequiresTrailingBlank(1) {
		t.Error("same colored consecutive blocks should require a trailing blank")
	}
	if d.RequiresTrailingBlank(2) {
		t.Error("last block never requires a trailing blank")
	}
}

func TestKeyDedup(t *testing.T) {
	a := NewBinary([]int{1, 1, 3})
	b := NewBinary([]int{1, 1, 3})
	c := NewBinary([]int{1, 2, 3})

	if a.Key() != b.Key() {
		t.Errorf("identical descriptions should share a key: %q != %q", a.Key(), b.Key())
	}
	if a.Key() == c.Key() {
		t.Errorf("distinct descriptions should not share a key")
	}
}

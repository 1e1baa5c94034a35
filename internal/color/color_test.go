package color

import "testing"

func TestBinaryAddColor(t *testing.T) {
	cases := []struct {
		start Binary
		add   ID
		want  Binary
	}{
		{Undefined, BlankID, Blank},
		{Undefined, FilledID, Filled},
		{Blank, BlankID, Blank},
		{Blank, FilledID, Either},
		{Filled, FilledID, Filled},
		{Either, BlankID, Either},
	}

	for i, tc := range cases {
		if got := tc.start.AddColor(tc.add); got != tc.want {
			t.Errorf("%d: %v.AddColor(%v) = %v, want %v", i, tc.start, tc.add, got, tc.want)
		}
	}
}

func TestBinarySubtract(t *testing.T) {
	undefined := Undefined
	got, err := undefined.Subtract(Filled)
	if err != nil || got != Blank {
		t.Fatalf("Undefined.Subtract(Filled) = %v, %v, want Blank, nil", got, err)
	}

	if _, err := Blank.Subtract(Blank); err != ErrAlreadySolved {
		t.Fatalf("Blank.Subtract(Blank) err = %v, want ErrAlreadySolved", err)
	}

	full := Either
	if _, err := full.Subtract(Either); err != ErrEmptyDomain {
		t.Fatalf("Either.Subtract(Either) err = %v, want ErrEmptyDomain", err)
	}
}

func TestBinarySolutionRate(t *testing.T) {
	if Undefined.SolutionRate(2) != 0 {
		t.Errorf("Undefined.SolutionRate = %v, want 0", Undefined.SolutionRate(2))
	}
	if Filled.SolutionRate(2) != 1 {
		t.Errorf("Filled.SolutionRate = %v, want 1", Filled.SolutionRate(2))
	}
}

func TestMultiAddAndSubtract(t *testing.T) {
	const red, green, blue ID = 2, 4, 8

	d := NewMultiDomain([]ID{BlankID, red, green, blue})
	cell := d.Undefined()

	if cell.IsSolved() {
		t.Fatal("fresh multi cell should not be solved")
	}

	narrowed, err := cell.Subtract(newMulti(BlankID, green, blue))
	if err != nil {
		t.Fatalf("Subtract returned error: %v", err)
	}
	if !narrowed.IsSolved() {
		t.Fatalf("expected narrowed cell to be solved, got %v", narrowed)
	}
	if !narrowed.CanBe(red) {
		t.Fatalf("expected narrowed cell to allow red, got %v", narrowed.Variants())
	}

	if _, err := narrowed.Subtract(newMulti(red)); err != ErrAlreadySolved {
		t.Fatalf("solved.Subtract(self) err = %v, want ErrAlreadySolved", err)
	}

	all := newMulti(BlankID, red, green, blue)
	if _, err := cell.Subtract(all); err != ErrEmptyDomain {
		t.Fatalf("Subtract(everything) err = %v, want ErrEmptyDomain", err)
	}
}

func TestMultiKeyDistinguishesUnsolvedStates(t *testing.T) {
	const red, green, blue ID = 2, 4, 8
	d := NewMultiDomain([]ID{BlankID, red, green, blue})

	full := d.Undefined()
	narrowed, err := full.Subtract(newMulti(blue))
	if err != nil {
		t.Fatalf("Subtract: %v", err)
	}

	if full.String() != narrowed.String() {
		t.Fatalf("test setup: expected both cells to render identically, got %q and %q", full.String(), narrowed.String())
	}
	if full.Key() == narrowed.Key() {
		t.Fatalf("Key() collapsed two different possibility sets to %q", full.Key())
	}
}

func TestMultiSolutionRate(t *testing.T) {
	const red, green ID = 2, 4
	d := NewMultiDomain([]ID{BlankID, red, green})
	cell := d.Undefined()

	if rate := cell.SolutionRate(d.NumColors()); rate != 0 {
		t.Errorf("fresh cell SolutionRate = %v, want 0", rate)
	}

	solved, err := cell.Subtract(newMulti(BlankID, green))
	if err != nil {
		t.Fatalf("Subtract: %v", err)
	}
	if rate := solved.SolutionRate(d.NumColors()); rate != 1 {
		t.Errorf("solved cell SolutionRate = %v, want 1", rate)
	}
}

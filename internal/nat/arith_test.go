package nat

import (
	"errors"
	"testing"

	"github.com/agbru/limbcalc/internal/limb"
)

func decimal() *Engine { return New(limb.MustBase(10)) }

func TestAddDecimal(t *testing.T) {
	t.Parallel()
	e := decimal()
	tests := []struct {
		name string
		a, b Nat
		want Nat
	}{
		{"carry_into_new_limb", n(9, 9, 2, 8, 9), n(1, 2, 2, 8, 9), n(0, 2, 5, 6, 9, 1)},
		{"short_plus_long", n(9), n(1, 9, 9, 9, 9), n(0, 0, 0, 0, 0, 1)},
		{"zero_left", nil, n(4, 2), n(4, 2)},
		{"zero_both", nil, nil, nil},
		{"non_canonical_input", n(1, 0, 0), n(2), n(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := e.Add(tt.a, tt.b)
			if !equal(got, tt.want) || !IsCanonical(e.Base(), got) {
				t.Errorf("Add(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSubDecimal(t *testing.T) {
	t.Parallel()
	e := decimal()
	tests := []struct {
		name     string
		a, b     Nat
		wantSign Sign
		want     Nat
	}{
		{"positive", n(9, 8), n(1, 1), Positive, n(8, 7)},
		{"equal_upper_limbs", n(9, 9, 2, 8, 9), n(1, 2, 2, 8, 9), Positive, n(8, 7)},
		{"negative_shorter", n(9), n(1, 9, 9, 9, 9), Negative, n(2, 8, 9, 9, 9)},
		{"negative_longer_a", n(9, 8, 2), n(1, 9, 9, 9, 9), Negative, n(2, 0, 7, 9, 9)},
		{"equal", n(3, 4, 5), n(3, 4, 5), Zero, nil},
		{"equal_top_limbs", n(1, 5, 7), n(9, 4, 7), Positive, n(2)},
		{"both_zero", nil, nil, Zero, nil},
		{"zero_minus_x", nil, n(5), Negative, n(5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sign, got := e.Sub(tt.a, tt.b)
			if sign != tt.wantSign || !equal(got, tt.want) || !IsCanonical(e.Base(), got) {
				t.Errorf("Sub(%v, %v) = (%d, %v), want (%d, %v)", tt.a, tt.b, sign, got, tt.wantSign, tt.want)
			}
			if (sign == Zero) != (len(got) == 0) {
				t.Errorf("sign %d inconsistent with magnitude %v", sign, got)
			}
		})
	}
}

func TestBaseMulDecimal(t *testing.T) {
	t.Parallel()
	e := decimal()
	tests := []struct {
		name string
		a, b Nat
		want Nat
	}{
		{"scalar", n(2, 2, 2), n(3), n(6, 6, 6)},
		{"scalar_carry", n(2, 2, 2, 4, 5, 6), n(3), n(6, 6, 6, 2, 6, 9, 1)},
		{"identity_left", n(1), n(4, 5, 6), n(4, 5, 6)},
		{"identity_right", n(4, 5, 6), n(1), n(4, 5, 6)},
		{"zero", nil, n(4, 5, 6), nil},
		{"multi", n(1, 2, 3, 4, 6), n(1, 2, 3, 4, 5), n(1, 4, 0, 1, 8, 9, 3, 9, 4, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := e.BaseMul(tt.a, tt.b)
			if !equal(got, tt.want) || !IsCanonical(e.Base(), got) {
				t.Errorf("BaseMul(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestResultsDoNotAliasInputs(t *testing.T) {
	t.Parallel()
	e := decimal()
	a := n(4, 5, 6)
	if got := e.BaseMul(n(1), a); sameBacking(got, a) {
		t.Error("BaseMul identity returned its input")
	}
	if q, _, _ := e.Div(a, n(1)); sameBacking(q, a) {
		t.Error("Div by one returned its input")
	}
	if _, r, _ := e.Div(a, n(1, 2, 3, 4)); sameBacking(r, a) {
		t.Error("Div by a longer divisor returned its input as remainder")
	}
	if got := e.Add(a, nil); sameBacking(got, a) {
		t.Error("Add with zero returned its input")
	}
}

func TestCmp(t *testing.T) {
	t.Parallel()
	e := decimal()
	tests := []struct {
		a, b Nat
		want int
	}{
		{n(1, 2), n(9), 1},
		{n(9), n(1, 2), -1},
		{n(3, 2), n(1, 3), -1},
		{n(3, 2, 0), n(3, 2), 0},
		{nil, nil, 0},
	}
	for _, tt := range tests {
		if got := e.Cmp(tt.a, tt.b); got != tt.want {
			t.Errorf("Cmp(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTrimAndCanonical(t *testing.T) {
	t.Parallel()
	b := limb.MustBase(10)
	if got := Trim(n(1, 2, 0, 0)); !equal(got, n(1, 2)) || len(got) != 2 {
		t.Errorf("Trim = %v", got)
	}
	if got := Trim(n(0, 0)); len(got) != 0 {
		t.Errorf("Trim of zeros = %v", got)
	}
	if IsCanonical(b, n(1, 0)) {
		t.Error("trailing zero accepted as canonical")
	}
	if IsCanonical(b, n(10)) {
		t.Error("limb equal to the base accepted as canonical")
	}
	if !IsCanonical(b, nil) || !n(0, 0).IsZero() {
		t.Error("zero handling")
	}
}

func TestFromWordAndBitLen(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x    uint64
		want int
	}{
		{0, 0}, {1, 1}, {2, 2}, {3, 2}, {4, 3}, {156, 8}, {1 << 32, 33},
	}
	for _, tb := range testBases {
		e := New(tb.base)
		for _, tt := range tests {
			if tt.x>>(limb.WordBits-1)>>1 != 0 {
				continue // does not fit a 32-bit word
			}
			x := e.FromWord(Word(tt.x))
			if !IsCanonical(e.Base(), x) {
				t.Errorf("%s: FromWord(%d) = %v not canonical", tb.name, tt.x, x)
			}
			if got := toBig(e, x).Uint64(); got != tt.x {
				t.Errorf("%s: FromWord(%d) evaluates to %d", tb.name, tt.x, got)
			}
			if got := e.BitLen(x); got != tt.want {
				t.Errorf("%s: BitLen(%d) = %d, want %d", tb.name, tt.x, got, tt.want)
			}
		}
	}
}

func TestOptionsClamp(t *testing.T) {
	t.Parallel()
	e := New(limb.Native(), WithThreshold(-5), WithParallelThreshold(-1))
	if o := e.Options(); o.KaratsubaThreshold != 1 || o.ParallelThreshold != 0 {
		t.Errorf("Options() = %+v", o)
	}
	e = New(limb.Native(), WithOptions(Options{KaratsubaThreshold: 40, ParallelThreshold: 128}))
	if o := e.Options(); o.KaratsubaThreshold != 40 || o.ParallelThreshold != 128 {
		t.Errorf("Options() = %+v", o)
	}
}

func TestDivByZero(t *testing.T) {
	t.Parallel()
	e := decimal()
	for _, a := range []Nat{n(1, 2, 3), n(0, 0, 0, 0, 1)} {
		for _, b := range []Nat{nil, {}, n(0, 0)} {
			if _, _, err := e.Div(a, b); !errors.Is(err, ErrDividedByZero) {
				t.Errorf("Div(%v, %v): err = %v, want ErrDividedByZero", a, b, err)
			}
		}
	}
	if _, err := e.Quo(nil, nil); !errors.Is(err, ErrDividedByZero) {
		t.Errorf("Quo(0, 0): err = %v", err)
	}
	if _, err := e.Rem(n(5), nil); !errors.Is(err, ErrDividedByZero) {
		t.Errorf("Rem(5, 0): err = %v", err)
	}
}

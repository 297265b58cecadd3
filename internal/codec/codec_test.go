package codec

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"fortio.org/safecast"

	"github.com/agbru/limbcalc/internal/bigint"
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/nat"
)

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()
	engines := []*nat.Engine{
		nat.New(limb.Native()),
		nat.New(limb.MustBase(10)),
		nat.New(limb.MustBase(1000)),
	}
	values := []string{"0", "7", "-123456789012345678901234567890", "18446744073709551616"}
	for _, e := range engines {
		for _, v := range values {
			for _, format := range []string{JSON, Msgpack} {
				x := bigint.MustParse(e, v, 10)
				var buf bytes.Buffer
				if err := Encode(&buf, format, FromInt(x)); err != nil {
					t.Fatalf("Encode(%s): %v", format, err)
				}
				s, err := Decode(&buf, format)
				if err != nil {
					t.Fatalf("Decode(%s): %v", format, err)
				}
				y, err := s.Int()
				if err != nil {
					t.Fatalf("Int(): %v", err)
				}
				if y.String() != x.String() {
					t.Errorf("base %s %s: got %s, want %s", e.Base(), format, y, x)
				}
				if y.Engine().Base() != e.Base() {
					t.Errorf("base %s lost: got %s", e.Base(), y.Engine().Base())
				}
			}
		}
	}
}

func TestJSONLayout(t *testing.T) {
	t.Parallel()
	x := bigint.MustParse(nat.New(limb.MustBase(10)), "-321", 10)
	var buf bytes.Buffer
	if err := Encode(&buf, JSON, FromInt(x)); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), `{"base":"10","sign":-1,"limbs":[1,2,3]}`+"\n"; got != want {
		t.Errorf("JSON = %q, want %q", got, want)
	}
}

func TestSnapshotIntErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"bad base", Snapshot{Base: "1", Sign: 1, Limbs: []uint64{1}}},
		{"limb out of range", Snapshot{Base: "10", Sign: 1, Limbs: []uint64{10}}},
		{"bad sign", Snapshot{Base: "10", Sign: 2, Limbs: []uint64{1}}},
		{"sign of zero", Snapshot{Base: "10", Sign: 1}},
		{"missing sign", Snapshot{Base: "10", Limbs: []uint64{4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := tt.snap.Int(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestUnknownFormat(t *testing.T) {
	t.Parallel()
	if err := Encode(&bytes.Buffer{}, "xml", Snapshot{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Encode err = %v", err)
	}
	if _, err := Decode(strings.NewReader(""), "xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Decode err = %v", err)
	}
}

func TestDecodeRejectsUnknownJSONFields(t *testing.T) {
	t.Parallel()
	_, err := Decode(strings.NewReader(`{"base":"10","sign":1,"limbs":[1],"extra":true}`), JSON)
	if err == nil {
		t.Error("expected unknown field error")
	}
}

func TestSnapshotWideLimb(t *testing.T) {
	t.Parallel()
	snap := Snapshot{Base: limb.Native().String(), Sign: 1, Limbs: []uint64{math.MaxUint64}}
	x, err := snap.Int()
	if limb.WordBits < 64 {
		if !errors.Is(err, safecast.ErrOutOfRange) {
			t.Errorf("Int() error = %v, want ErrOutOfRange", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("Int() error = %v", err)
	}
	if got := x.Big(); !got.IsUint64() || got.Uint64() != math.MaxUint64 {
		t.Errorf("Int() = %s, want %d", got, uint64(math.MaxUint64))
	}
}

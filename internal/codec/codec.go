// Package codec exports integers as limb snapshots in JSON or MessagePack.
//
// A snapshot records the limb base, the sign and the magnitude limbs least
// significant first, so a value can be reloaded without radix conversion.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/agbru/limbcalc/internal/bigint"
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/nat"
)

// Formats.
const (
	JSON    = "json"
	Msgpack = "msgpack"
)

// ErrUnknownFormat is returned for a format other than JSON or Msgpack.
var ErrUnknownFormat = errors.New("codec: unknown format")

// Snapshot is the serialized form of an integer.
type Snapshot struct {
	Base  string   `json:"base" msgpack:"base"`
	Sign  int      `json:"sign" msgpack:"sign"`
	Limbs []uint64 `json:"limbs" msgpack:"limbs"`
}

// FromInt captures x.
func FromInt(x *bigint.Int) Snapshot {
	abs := x.Limbs()
	limbs := make([]uint64, len(abs))
	for i, w := range abs {
		limbs[i] = uint64(w)
	}
	return Snapshot{
		Base:  x.Engine().Base().String(),
		Sign:  x.Sign(),
		Limbs: limbs,
	}
}

// Int rebuilds the integer in a new engine for the snapshot's base.
func (s Snapshot) Int(opts ...nat.Option) (*bigint.Int, error) {
	b, err := limb.ParseBase(s.Base)
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	if s.Sign < -1 || s.Sign > 1 {
		return nil, fmt.Errorf("codec: sign %d outside [-1, 1]", s.Sign)
	}
	words := make([]nat.Word, len(s.Limbs))
	for i, v := range s.Limbs {
		w, err := safecast.Conv[nat.Word](v)
		if err != nil {
			return nil, fmt.Errorf("codec: limb %d overflows a %d-bit word: %w", i, limb.WordBits, err)
		}
		words[i] = w
	}
	x, err := bigint.FromLimbs(nat.New(b, opts...), s.Sign < 0, words)
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	if x.Sign() != s.Sign {
		return nil, fmt.Errorf("codec: sign %d does not match magnitude", s.Sign)
	}
	return x, nil
}

// Encode writes s to w in the given format. JSON output ends with a newline.
func Encode(w io.Writer, format string, s Snapshot) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		return enc.Encode(s)
	case Msgpack:
		return msgpack.NewEncoder(w).Encode(s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Decode reads one snapshot from r.
func Decode(r io.Reader, format string) (Snapshot, error) {
	var s Snapshot
	var err error
	switch format {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	case Msgpack:
		err = msgpack.NewDecoder(r).Decode(&s)
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return s, fmt.Errorf("codec: decoding %s: %w", format, err)
	}
	return s, nil
}

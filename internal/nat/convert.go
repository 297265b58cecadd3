package nat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agbru/limbcalc/internal/limb"
)

// MaxTextRadix is the largest radix with a one-character digit alphabet.
const MaxTextRadix = 36

var (
	// ErrInvalidDigit reports a character outside the digit alphabet of
	// the requested radix.
	ErrInvalidDigit = errors.New("invalid digit")
	// ErrInvalidRadix reports a text radix outside [2, 36].
	ErrInvalidRadix = errors.New("invalid radix")
)

// DigitError locates an invalid character in text input.
type DigitError struct {
	Text  string
	Pos   int
	Char  rune
	Radix int
}

func (e *DigitError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%v: empty input in base %d", ErrInvalidDigit, e.Radix)
	}
	return fmt.Sprintf("%v %q at position %d of %q in base %d", ErrInvalidDigit, e.Char, e.Pos, e.Text, e.Radix)
}

func (e *DigitError) Unwrap() error { return ErrInvalidDigit }

// ConvertToInternal returns the magnitude whose digits in radix from are
// digits, most significant first. Every digit must be below from.
func (e *Engine) ConvertToInternal(from Word, digits []Word) Nat {
	checkRadix(from)
	if e.base.Valid(from) {
		// Radix and digits fit in one limb: multiply-accumulate in place.
		var acc Nat
		for _, d := range digits {
			if c := e.k.MulConst(acc, from); c != 0 {
				acc = append(acc, c)
			}
			if c := e.k.AddConst(acc, d); c != 0 {
				acc = append(acc, c)
			}
		}
		return Trim(acc)
	}
	radix := e.FromWord(from)
	var acc Nat
	for _, d := range digits {
		acc = e.Add(e.Mul(acc, radix), e.FromWord(d))
	}
	return acc
}

// ConvertFromInternal returns the digits of m in radix to, least significant
// first. Zero has no digits.
func (e *Engine) ConvertFromInternal(to Word, m Nat) []Word {
	checkRadix(to)
	m = Trim(m)
	if len(m) == 0 {
		return nil
	}
	if e.base.Valid(to) {
		// Repeated scalar division of a most-significant-first copy, dropping
		// leading zero limbs as the quotient shrinks.
		w := clone(m)
		reverse(w)
		digits := make([]Word, 0, len(m))
		for len(w) > 0 {
			digits = append(digits, e.k.DivConst(w, to))
			for len(w) > 0 && w[0] == 0 {
				w = w[1:]
			}
		}
		return digits
	}
	radix := e.FromWord(to)
	var digits []Word
	for len(m) > 0 {
		q, r, _ := e.Div(m, radix)
		digits = append(digits, e.word(r))
		m = q
	}
	return digits
}

// word returns the machine value of a magnitude known to fit in one word.
func (e *Engine) word(x Nat) Word {
	if e.base.IsNative() {
		if len(x) == 0 {
			return 0
		}
		return x[0]
	}
	var v Word
	for i := len(x) - 1; i >= 0; i-- {
		v = v*e.base.Radix() + x[i]
	}
	return v
}

// ConvertFromString parses text, one character per digit, in radix from
// (2 to 36). Digits are 0-9 then a-z, case-insensitive. Leading zeros are
// allowed; an empty text or any character outside the alphabet is a
// *DigitError.
func (e *Engine) ConvertFromString(from int, text string) (Nat, error) {
	if from < 2 || from > MaxTextRadix {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRadix, from)
	}
	if text == "" {
		return nil, &DigitError{Radix: from}
	}
	digits := make([]Word, 0, len(text))
	for i, ch := range text {
		v := digitValue(ch)
		if v < 0 || v >= from {
			return nil, &DigitError{Text: text, Pos: i, Char: ch, Radix: from}
		}
		digits = append(digits, Word(v))
	}
	return e.ConvertToInternal(Word(from), digits), nil
}

// FormatDigits renders least-significant-first digits as text, most
// significant first, using the 0-9a-z alphabet. Zero renders as "0".
func FormatDigits(digits []Word) string {
	if len(digits) == 0 {
		return "0"
	}
	var sb strings.Builder
	sb.Grow(len(digits))
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if d >= MaxTextRadix {
			panic("nat: digit outside the text alphabet")
		}
		sb.WriteByte(alphabet[d])
	}
	return sb.String()
}

// Text returns x written in radix 2 to 36.
func (e *Engine) Text(x Nat, radix int) (string, error) {
	if radix < 2 || radix > MaxTextRadix {
		return "", fmt.Errorf("%w: %d", ErrInvalidRadix, radix)
	}
	return FormatDigits(e.ConvertFromInternal(Word(radix), x)), nil
}

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func digitValue(ch rune) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'z':
		return int(ch-'a') + 10
	case 'A' <= ch && ch <= 'Z':
		return int(ch-'A') + 10
	}
	return -1
}

func checkRadix(r Word) {
	if r < 2 {
		panic("nat: conversion radix below 2")
	}
}

// halfBits is the width of the half-word digits used to move values between
// the engine's base and native words.
const halfBits = limb.WordBits / 2

// toNative converts x to native words through half-word digits.
func (e *Engine) toNative(x Nat) []Word {
	halves := e.ConvertFromInternal(Word(1)<<halfBits, x)
	words := make([]Word, (len(halves)+1)/2)
	for i, h := range halves {
		words[i/2] |= h << (halfBits * uint(i%2))
	}
	return Trim(words)
}

// FromWords converts native machine words, least significant first, into
// the engine's base.
func (e *Engine) FromWords(words []Word) Nat {
	words = Trim(words)
	if e.base.IsNative() {
		return clone(words)
	}
	const mask = Word(1)<<halfBits - 1
	halves := make([]Word, 0, 2*len(words))
	for i := len(words) - 1; i >= 0; i-- {
		halves = append(halves, words[i]>>halfBits, words[i]&mask)
	}
	return e.ConvertToInternal(Word(1)<<halfBits, halves)
}

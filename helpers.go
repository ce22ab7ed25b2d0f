// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"fmt"
	"strings"
	"unicode"
)

// Rat is a rational number.
type Rat[T int32 | uint32] interface {
	Num() T
	Den() T
	Float64() float64

	// String returns the string representation of the rational number
	// in the form numerator/denominator.
	String() string
}

// rat is a lightweight version of math/big.Rat.
type rat[T int32 | uint32] struct {
	num T
	den T
}

func (r rat[T]) Num() T {
	return r.num
}

func (r rat[T]) Den() T {
	return r.den
}

func (r rat[T]) Float64() float64 {
	return float64(r.num) / float64(r.den)
}

func (r rat[T]) String() string {
	return fmt.Sprintf("%d/%d", r.num, r.den)
}

// NewRat returns a new Rat with the given numerator and denominator.
// A zero denominator is kept as is; the TIFF rational type allows it and
// the string form preserves what the camera wrote.
func NewRat[T int32 | uint32](num, den T) Rat[T] {
	return &rat[T]{num: num, den: den}
}

func printableString(s string) string {
	ss := strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, s)

	return strings.TrimSpace(ss)
}

func trimBytesNulls(b []byte) []byte {
	var lo, hi int
	for lo = 0; lo < len(b) && b[lo] == 0; lo++ {
	}
	for hi = len(b) - 1; hi >= 0 && b[hi] == 0; hi-- {
	}
	if lo > hi {
		return nil
	}
	return b[lo : hi+1]
}

func firstUpper(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Value holds the raw payload of a directory entry together with
// enough type information to render or convert it.
type Value struct {
	typ   typeID
	count uint32
	raw   []byte
	bo    ByteOrder
}

func newValue(typ typeID, count uint32, raw []byte, bo ByteOrder) *Value {
	return &Value{typ: typ, count: count, raw: raw, bo: bo}
}

// Count returns the number of components in the value.
func (v *Value) Count() uint32 {
	return v.count
}

// Size returns the size of the raw payload in bytes.
func (v *Value) Size() int {
	return len(v.raw)
}

// Bytes returns the raw payload.
func (v *Value) Bytes() []byte {
	return v.raw
}

// uintAt returns component i widened to uint32. Signed and rational
// types return 0; callers that need those use intAt or ratAt.
func (v *Value) uintAt(i int) uint32 {
	switch tiffType(v.typ) {
	case ttUnsignedByte, ttUndefined:
		if i < len(v.raw) {
			return uint32(v.raw[i])
		}
	case ttUnsignedShort:
		if 2*i+2 <= len(v.raw) {
			return uint32(v.bo.uint16(v.raw, 2*i))
		}
	case ttUnsignedLong, ttTiffIfd:
		if 4*i+4 <= len(v.raw) {
			return v.bo.uint32(v.raw, 4*i)
		}
	}
	return 0
}

// intAt returns component i widened to int64, covering both signed and
// unsigned integer types.
func (v *Value) intAt(i int) int64 {
	switch tiffType(v.typ) {
	case ttSignedByte:
		if i < len(v.raw) {
			return int64(int8(v.raw[i]))
		}
	case ttSignedShort:
		if 2*i+2 <= len(v.raw) {
			return int64(int16(v.bo.uint16(v.raw, 2*i)))
		}
	case ttSignedLong:
		if 4*i+4 <= len(v.raw) {
			return int64(int32(v.bo.uint32(v.raw, 4*i)))
		}
	default:
		return int64(v.uintAt(i))
	}
	return 0
}

// String renders the value the way it is emitted into the tag maps.
func (v *Value) String() string {
	if len(v.raw) == 0 {
		return ""
	}

	if v.typ == typeComment {
		return v.commentString()
	}

	switch tiffType(v.typ) {
	case ttAsciiString:
		return printableString(string(trimBytesNulls(v.raw)))
	case ttUndefined:
		return v.joinInts(func(i int) string { return strconv.Itoa(int(v.raw[i])) }, len(v.raw))
	case ttUnsignedByte, ttUnsignedShort, ttUnsignedLong, ttTiffIfd:
		return v.joinInts(func(i int) string { return strconv.FormatUint(uint64(v.uintAt(i)), 10) }, int(v.count))
	case ttSignedByte, ttSignedShort, ttSignedLong:
		return v.joinInts(func(i int) string { return strconv.FormatInt(v.intAt(i), 10) }, int(v.count))
	case ttUnsignedRational:
		return v.joinInts(func(i int) string {
			if 8*i+8 > len(v.raw) {
				return ""
			}
			return NewRat(v.bo.uint32(v.raw, 8*i), v.bo.uint32(v.raw, 8*i+4)).String()
		}, int(v.count))
	case ttSignedRational:
		return v.joinInts(func(i int) string {
			if 8*i+8 > len(v.raw) {
				return ""
			}
			return NewRat(int32(v.bo.uint32(v.raw, 8*i)), int32(v.bo.uint32(v.raw, 8*i+4))).String()
		}, int(v.count))
	case ttTiffFloat:
		return v.joinInts(func(i int) string {
			if 4*i+4 > len(v.raw) {
				return ""
			}
			f := math.Float32frombits(v.bo.uint32(v.raw, 4*i))
			return strconv.FormatFloat(float64(f), 'f', -1, 32)
		}, int(v.count))
	case ttTiffDouble:
		return v.joinInts(func(i int) string {
			if 8*i+8 > len(v.raw) {
				return ""
			}
			f := math.Float64frombits(v.bo.uint64(v.raw, 8*i))
			return strconv.FormatFloat(f, 'f', -1, 64)
		}, int(v.count))
	}

	return printableString(string(v.raw))
}

func (v *Value) joinInts(format func(i int) string, n int) string {
	if n == 1 {
		return format(0)
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(format(i))
	}
	return sb.String()
}

// Comment values carry an 8-byte character set identifier in front of
// the text.
func (v *Value) commentString() string {
	b := v.raw
	if len(b) < 8 {
		return printableString(string(b))
	}
	id, rest := string(b[:8]), b[8:]
	switch id {
	case "ASCII\x00\x00\x00":
		return printableString(string(trimBytesNulls(rest)))
	case "UNICODE\x00":
		if len(rest)%2 != 0 {
			rest = rest[:len(rest)-1]
		}
		u := make([]uint16, len(rest)/2)
		for i := range u {
			u[i] = v.bo.uint16(rest, 2*i)
		}
		return printableString(string(utf16.Decode(u)))
	case "JIS\x00\x00\x00\x00\x00", "\x00\x00\x00\x00\x00\x00\x00\x00":
		return printableString(string(trimBytesNulls(rest)))
	}
	return printableString(string(trimBytesNulls(b)))
}

var _ fmt.Stringer = (*Value)(nil)

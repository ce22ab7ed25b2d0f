// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestValueString(t *testing.T) {
	c := qt.New(t)

	for _, tc := range []struct {
		name  string
		typ   typeID
		count uint32
		raw   []byte
		bo    ByteOrder
		want  string
	}{
		{"ascii", typeID(ttAsciiString), 5, []byte("ACME\x00"), ByteOrderLittle, "ACME"},
		{"ascii nulls", typeID(ttAsciiString), 7, []byte("\x00AB\x00\x00\x00\x00"), ByteOrderLittle, "AB"},
		{"short le", typeID(ttUnsignedShort), 1, []byte{0x2a, 0x00}, ByteOrderLittle, "42"},
		{"short be", typeID(ttUnsignedShort), 1, []byte{0x00, 0x2a}, ByteOrderBig, "42"},
		{"shorts", typeID(ttUnsignedShort), 3, []byte{1, 0, 2, 0, 3, 0}, ByteOrderLittle, "1 2 3"},
		{"signed byte", typeID(ttSignedByte), 1, []byte{0xff}, ByteOrderLittle, "-1"},
		{"signed long", typeID(ttSignedLong), 1, []byte{0xfe, 0xff, 0xff, 0xff}, ByteOrderLittle, "-2"},
		{"rational", typeID(ttUnsignedRational), 1, []byte{10, 0, 0, 0, 3, 0, 0, 0}, ByteOrderLittle, "10/3"},
		{"rational zero den", typeID(ttUnsignedRational), 1, []byte{1, 0, 0, 0, 0, 0, 0, 0}, ByteOrderLittle, "1/0"},
		{"srational", typeID(ttSignedRational), 1, []byte{0xff, 0xff, 0xff, 0xff, 2, 0, 0, 0}, ByteOrderLittle, "-1/2"},
		{"undefined", typeID(ttUndefined), 3, []byte{1, 2, 3}, ByteOrderLittle, "1 2 3"},
		{"float", typeID(ttTiffFloat), 1, []byte{0x00, 0x00, 0x20, 0x41}, ByteOrderLittle, "10"},
		{"empty", typeID(ttAsciiString), 0, nil, ByteOrderLittle, ""},
		{"comment ascii", typeComment, 13, []byte("ASCII\x00\x00\x00hello"), ByteOrderLittle, "hello"},
		{"comment unicode", typeComment, 12, []byte("UNICODE\x00h\x00i\x00"), ByteOrderLittle, "hi"},
	} {
		v := newValue(tc.typ, tc.count, tc.raw, tc.bo)
		c.Assert(v.String(), qt.Equals, tc.want, qt.Commentf("%s", tc.name))
	}
}

func TestValueAccessors(t *testing.T) {
	c := qt.New(t)

	v := newValue(typeID(ttUnsignedLong), 2, []byte{1, 0, 0, 0, 2, 0, 0, 0}, ByteOrderLittle)
	c.Assert(v.uintAt(0), qt.Equals, uint32(1))
	c.Assert(v.uintAt(1), qt.Equals, uint32(2))
	// Out of bounds reads degrade to zero.
	c.Assert(v.uintAt(5), qt.Equals, uint32(0))

	s := newValue(typeID(ttSignedShort), 1, []byte{0xff, 0xff}, ByteOrderLittle)
	c.Assert(s.intAt(0), qt.Equals, int64(-1))
}

func TestRat(t *testing.T) {
	c := qt.New(t)

	r := NewRat[uint32](10, 4)
	c.Assert(r.String(), qt.Equals, "10/4")
	c.Assert(r.Float64(), qt.Equals, 2.5)

	s := NewRat[int32](-1, 2)
	c.Assert(s.Num(), qt.Equals, int32(-1))
	c.Assert(s.String(), qt.Equals, "-1/2")
}

func TestPrintableString(t *testing.T) {
	c := qt.New(t)

	c.Assert(printableString(" hi\x00there "), qt.Equals, "hithere")
	c.Assert(printableString("clean"), qt.Equals, "clean")
}

func TestTrimBytesNulls(t *testing.T) {
	c := qt.New(t)

	c.Assert(string(trimBytesNulls([]byte("\x00\x00a b\x00"))), qt.Equals, "a b")
	c.Assert(trimBytesNulls([]byte{0, 0}), qt.IsNil)
	c.Assert(string(trimBytesNulls([]byte("x"))), qt.Equals, "x")
}

// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestDecodeCanonAFInfo(t *testing.T) {
	c := qt.New(t)

	// One AF point: 8 single shorts, 4 per-point shorts, 2 mask
	// shorts and the primary point.
	values := []uint16{30, 2, 1, 1, 100, 100, 100, 100, 5, 6, 7, 8, 1, 1, 0}

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x010f, typ: ttAsciiString, count: 6, offset: 200},
		{tag: 0x8769, typ: ttUnsignedLong, count: 1, inline: u32le(40)},
	}, 0)
	b.ifd(40, []entrySpec{
		{tag: 0x927c, typ: ttUndefined, count: 18, offset: 80},
	}, 0)
	b.ifd(80, []entrySpec{
		{tag: 0x0026, typ: ttUnsignedShort, count: uint32(len(values)), offset: 120},
	}, 0)
	for i, v := range values {
		b.putU16(120+2*i, v)
	}
	b.putBytes(200, []byte("Canon\x00"))

	meta, err := Decode(Options{Data: b.data()})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.EXIF()["Canon.AFInfoSize"], qt.Equals, "30")
	c.Assert(meta.EXIF()["Canon.AFAreaMode"], qt.Equals, "2")
	c.Assert(meta.EXIF()["Canon.AFNumPoints"], qt.Equals, "1")
	c.Assert(meta.EXIF()["Canon.AFXPositions"], qt.Equals, "7")
	c.Assert(meta.EXIF()["Canon.AFPrimaryPoint"], qt.Equals, "0")
	// Decoded as records, not as one flat entry.
	c.Assert(meta.EXIF()["Canon.AFInfo"], qt.Equals, "")
}

func TestDecodeCanonAFInfoSizeMismatch(t *testing.T) {
	c := qt.New(t)

	// First short does not match count*2; falls back to a plain
	// entry.
	values := []uint16{99, 2, 1, 1}

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x010f, typ: ttAsciiString, count: 6, offset: 200},
		{tag: 0x8769, typ: ttUnsignedLong, count: 1, inline: u32le(40)},
	}, 0)
	b.ifd(40, []entrySpec{
		{tag: 0x927c, typ: ttUndefined, count: 18, offset: 80},
	}, 0)
	b.ifd(80, []entrySpec{
		{tag: 0x0026, typ: ttUnsignedShort, count: uint32(len(values)), offset: 120},
	}, 0)
	for i, v := range values {
		b.putU16(120+2*i, v)
	}
	b.putBytes(200, []byte("Canon\x00"))

	warnf, warnings := warnCollector()
	meta, err := Decode(Options{Data: b.data(), Warnf: warnf})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.EXIF()["Canon.AFInfo"], qt.Equals, "99 2 1 1")
	c.Assert(*warnings, qt.Not(qt.HasLen), 0)
}

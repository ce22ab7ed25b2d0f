// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestReaderRejectsOversizedDirectory(t *testing.T) {
	c := qt.New(t)

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.putU16(8, 300)
	b.grow(8 + 2 + 300*12 + 4)

	warnf, warnings := warnCollector()
	meta, err := Decode(Options{Data: b.data(), Warnf: warnf})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.EXIF(), qt.HasLen, 0)
	c.Assert(*warnings, qt.Not(qt.HasLen), 0)
	c.Assert((*warnings)[0], qt.Contains, "300 entries")
}

func TestReaderDirEntryLimitOption(t *testing.T) {
	c := qt.New(t)

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x0112, typ: ttUnsignedShort, count: 1, inline: []byte{1, 0, 0, 0}},
		{tag: 0x0128, typ: ttUnsignedShort, count: 1, inline: []byte{2, 0, 0, 0}},
	}, 0)

	warnf, warnings := warnCollector()
	meta, err := Decode(Options{Data: b.data(), Warnf: warnf, LimitDirEntries: 1})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.EXIF(), qt.HasLen, 0)
	c.Assert(*warnings, qt.Not(qt.HasLen), 0)
}

func TestReaderCircularNextPointer(t *testing.T) {
	c := qt.New(t)

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	// The next pointer points back at the directory itself.
	b.ifd(8, []entrySpec{
		{tag: 0x0112, typ: ttUnsignedShort, count: 1, inline: []byte{3, 0, 0, 0}},
	}, 8)

	warnf, warnings := warnCollector()
	meta, err := Decode(Options{Data: b.data(), Warnf: warnf})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.EXIF()["Image.Orientation"], qt.Equals, "3")
	// The tag must not be emitted twice.
	c.Assert(meta.EXIF(), qt.HasLen, 1)

	found := false
	for _, w := range *warnings {
		if strings.Contains(w, "circular") {
			found = true
		}
	}
	c.Assert(found, qt.IsTrue)
}

func TestReaderSubIFDLimit(t *testing.T) {
	c := qt.New(t)

	const n = 50

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x014a, typ: ttUnsignedLong, count: n, offset: 40},
	}, 0)
	// 50 offsets, each pointing at its own minimal directory.
	dirStart := 40 + n*4
	for i := 0; i < n; i++ {
		off := dirStart + i*8
		b.putU32(40+i*4, uint32(off))
		b.ifd(off, []entrySpec{}, 0)
	}

	warnf, warnings := warnCollector()
	_, err := Decode(Options{Data: b.data(), Warnf: warnf})
	c.Assert(err, qt.IsNil)

	found := false
	for _, w := range *warnings {
		if strings.Contains(w, "first 9 of 50") {
			found = true
		}
	}
	c.Assert(found, qt.IsTrue)
}

func TestReaderDuplicateTags(t *testing.T) {
	c := qt.New(t)

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x0112, typ: ttUnsignedShort, count: 1, inline: []byte{1, 0, 0, 0}},
		{tag: 0x0112, typ: ttUnsignedShort, count: 1, inline: []byte{6, 0, 0, 0}},
	}, 0)

	meta, err := Decode(Options{Data: b.data()})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.EXIF()["Image.Orientation"], qt.Equals, "1")
	c.Assert(meta.EXIF()["Image.Orientation#2"], qt.Equals, "6")
}

func TestReaderValueOutOfBounds(t *testing.T) {
	c := qt.New(t)

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x010f, typ: ttAsciiString, count: 100, offset: 0xffff},
	}, 0)

	warnf, warnings := warnCollector()
	meta, err := Decode(Options{Data: b.data(), Warnf: warnf})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.EXIF()["Image.Make"], qt.Equals, "")
	c.Assert(*warnings, qt.Not(qt.HasLen), 0)
}

func TestReaderImplausibleCount(t *testing.T) {
	c := qt.New(t)

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x010f, typ: ttAsciiString, count: 0x10000000, offset: 26},
	}, 0)

	warnf, warnings := warnCollector()
	meta, err := Decode(Options{Data: b.data(), Warnf: warnf})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.EXIF()["Image.Make"], qt.Equals, "")
	c.Assert(*warnings, qt.Not(qt.HasLen), 0)
}

func TestReaderHugePlausibleCount(t *testing.T) {
	c := qt.New(t)

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	// Just below the implausible threshold; the data area cannot fit
	// the buffer and the value is dropped.
	b.ifd(8, []entrySpec{
		{tag: 0x011a, typ: ttUnsignedRational, count: 0x0fffffff, offset: 26},
	}, 0)

	warnf, warnings := warnCollector()
	meta, err := Decode(Options{Data: b.data(), Warnf: warnf})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.EXIF()["Image.XResolution"], qt.Equals, "")
	c.Assert(*warnings, qt.Not(qt.HasLen), 0)
}

func TestReaderUnknownType(t *testing.T) {
	c := qt.New(t)

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x0112, typ: 200, count: 2, inline: []byte{5, 6, 0, 0}},
	}, 0)

	warnf, warnings := warnCollector()
	_, err := Decode(Options{Data: b.data(), Warnf: warnf})
	c.Assert(err, qt.IsNil)

	found := false
	for _, w := range *warnings {
		if strings.Contains(w, "unknown type") {
			found = true
		}
	}
	c.Assert(found, qt.IsTrue)
}

func TestReaderTruncatedBuffers(t *testing.T) {
	c := qt.New(t)

	data := simpleExif()
	for i := 0; i < len(data); i++ {
		func() {
			defer func() {
				c.Assert(recover(), qt.IsNil, qt.Commentf("panic at length %d", i))
			}()
			Decode(Options{Data: data[:i]})
		}()
	}
}

func TestReaderThumbnailChain(t *testing.T) {
	c := qt.New(t)

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x0112, typ: ttUnsignedShort, count: 1, inline: []byte{1, 0, 0, 0}},
	}, 30)
	// IFD1 with a thumbnail offset/length pair.
	b.ifd(30, []entrySpec{
		{tag: 0x0201, typ: ttUnsignedLong, count: 1, inline: u32le(100)},
		{tag: 0x0202, typ: ttUnsignedLong, count: 1, inline: u32le(4)},
	}, 0)
	b.putBytes(100, []byte{0xff, 0xd8, 0xff, 0xd9})

	meta, err := Decode(Options{Data: b.data()})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.EXIF()["Thumbnail.JPEGInterchangeFormat"], qt.Equals, "100")
	c.Assert(meta.EXIF()["Thumbnail.JPEGInterchangeFormatLength"], qt.Equals, "4")
}

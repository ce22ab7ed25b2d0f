// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"bytes"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Cross-check the decoder against goexif on the same synthetic input.

func TestDecodeAgainstGoexif(t *testing.T) {
	c := qt.New(t)

	data := simpleExif()

	x, err := exif.Decode(bytes.NewReader(data))
	c.Assert(err, qt.IsNil)
	makeTag, err := x.Get(exif.Make)
	c.Assert(err, qt.IsNil)
	want, err := makeTag.StringVal()
	c.Assert(err, qt.IsNil)

	meta, err := Decode(Options{Data: data})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.EXIF()["Image.Make"], qt.Equals, want)
}

func TestTiffStructureAgainstGoexif(t *testing.T) {
	c := qt.New(t)

	b := newTiffBuilder(ByteOrderBig)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x0112, typ: ttUnsignedShort, count: 1, inline: []byte{0x00, 0x03, 0, 0}},
		{tag: 0x011a, typ: ttUnsignedRational, count: 1, offset: 40},
	}, 0)
	b.putU32(40, 72)
	b.putU32(44, 1)
	data := b.data()

	tf, err := tiff.Decode(bytes.NewReader(data))
	c.Assert(err, qt.IsNil)
	c.Assert(tf.Dirs, qt.HasLen, 1)
	c.Assert(tf.Dirs[0].Tags, qt.HasLen, 2)

	meta, err := Decode(Options{Data: data})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.EXIF(), qt.HasLen, 2)
	c.Assert(meta.EXIF()["Image.Orientation"], qt.Equals, "3")
	c.Assert(meta.EXIF()["Image.XResolution"], qt.Equals, "72/1")
}

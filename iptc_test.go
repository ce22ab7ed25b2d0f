// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func iptcDataset(record, dataset uint8, value string) []byte {
	b := []byte{iptcTagMarker, record, dataset, byte(len(value) >> 8), byte(len(value))}
	return append(b, value...)
}

func TestDecodeIPTCBlocks(t *testing.T) {
	c := qt.New(t)

	var data []byte
	data = append(data, iptcDataset(2, 5, "My Object")...)
	data = append(data, iptcDataset(2, 25, "red")...)
	data = append(data, iptcDataset(2, 25, "green")...)
	data = append(data, iptcDataset(2, 90, "Oslo")...)
	data = append(data, iptcDataset(2, 116, "© 2024")...)

	out := map[string]string{}
	err := decodeIPTCBlocks(data, out, func(string, ...any) {})
	c.Assert(err, qt.IsNil)
	c.Assert(out["Application2.ObjectName"], qt.Equals, "My Object")
	c.Assert(out["Application2.Keywords"], qt.Equals, "red, green")
	c.Assert(out["Application2.City"], qt.Equals, "Oslo")
}

func TestDecodeIPTCCharset(t *testing.T) {
	c := qt.New(t)

	// Without the UTF-8 escape the bytes are decoded as ISO 8859-1.
	latin := iptcDataset(2, 90, "Troms\xf8")
	out := map[string]string{}
	err := decodeIPTCBlocks(latin, out, func(string, ...any) {})
	c.Assert(err, qt.IsNil)
	c.Assert(out["Application2.City"], qt.Equals, "Tromsø")

	// With the escape the bytes pass through as UTF-8.
	var utf []byte
	utf = append(utf, iptcDataset(1, 90, "\x1b%G")...)
	utf = append(utf, iptcDataset(2, 90, "Tromsø")...)
	out = map[string]string{}
	err = decodeIPTCBlocks(utf, out, func(string, ...any) {})
	c.Assert(err, qt.IsNil)
	c.Assert(out["Application2.City"], qt.Equals, "Tromsø")
}

func TestDecodeIPTCTruncated(t *testing.T) {
	c := qt.New(t)

	data := iptcDataset(2, 5, "My Object")
	for i := 0; i < len(data); i++ {
		out := map[string]string{}
		err := decodeIPTCBlocks(data[:i], out, func(string, ...any) {})
		c.Assert(err, qt.IsNil, qt.Commentf("length %d", i))
	}
}

func TestLocateIptcIrb(t *testing.T) {
	c := qt.New(t)

	iptc := iptcDataset(2, 5, "Hidden")

	var irb []byte
	// A non-IPTC resource first.
	irb = append(irb, "8BIM"...)
	irb = append(irb, 0x04, 0x0b) // resource id
	irb = append(irb, 0, 0)       // empty name, padded
	irb = append(irb, 0, 0, 0, 2, 0xab, 0xcd)
	// The IPTC/NAA resource.
	irb = append(irb, "8BIM"...)
	irb = append(irb, 0x04, 0x04)
	irb = append(irb, 0, 0)
	irb = append(irb, 0, 0, 0, byte(len(iptc)))
	irb = append(irb, iptc...)
	if len(iptc)%2 != 0 {
		irb = append(irb, 0)
	}

	got, err := locateIptcIrb(irb)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.IsNotNil)

	out := map[string]string{}
	c.Assert(decodeIPTCBlocks(got, out, func(string, ...any) {}), qt.IsNil)
	c.Assert(out["Application2.ObjectName"], qt.Equals, "Hidden")
}

func TestLocateIptcIrbInvalid(t *testing.T) {
	c := qt.New(t)

	_, err := locateIptcIrb([]byte("NOTPHOTOSHOPDATA"))
	c.Assert(err, qt.IsNotNil)

	got, err := locateIptcIrb(nil)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.IsNil)
}

func TestDecodeIPTCFromTIFF(t *testing.T) {
	c := qt.New(t)

	iptc := iptcDataset(2, 105, "Breaking News")

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x83bb, typ: ttUndefined, count: uint32(len(iptc)), offset: 60},
	}, 0)
	b.putBytes(60, iptc)

	meta, err := Decode(Options{Data: b.data()})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.IPTC()["Application2.Headline"], qt.Equals, "Breaking News")

	// The block entry itself is still listed as an Exif tag.
	_, ok := meta.EXIF()["Image.IPTCNAA"]
	c.Assert(ok, qt.IsTrue)
}

func TestDecodeIPTCPrefersNativeBlock(t *testing.T) {
	c := qt.New(t)

	native := iptcDataset(2, 105, "Native")
	hidden := iptcDataset(2, 105, "Resource")

	var irb []byte
	irb = append(irb, "8BIM"...)
	irb = append(irb, 0x04, 0x04)
	irb = append(irb, 0, 0)
	irb = append(irb, 0, 0, 0, byte(len(hidden)))
	irb = append(irb, hidden...)
	if len(hidden)%2 != 0 {
		irb = append(irb, 0)
	}

	// The Photoshop resources come first in the directory; the native
	// IPTC/NAA block must still win.
	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x8649, typ: ttUndefined, count: uint32(len(irb)), offset: 80},
		{tag: 0x83bb, typ: ttUndefined, count: uint32(len(native)), offset: 160},
	}, 0)
	b.putBytes(80, irb)
	b.putBytes(160, native)

	meta, err := Decode(Options{Data: b.data()})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.IPTC()["Application2.Headline"], qt.Equals, "Native")

	// Both entries survive as Exif tags.
	_, ok := meta.EXIF()["Image.ImageResources"]
	c.Assert(ok, qt.IsTrue)
	_, ok = meta.EXIF()["Image.IPTCNAA"]
	c.Assert(ok, qt.IsTrue)
}

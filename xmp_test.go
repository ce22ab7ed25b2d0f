// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"errors"
	"io"
	"testing"

	qt "github.com/frankban/quicktest"
)

const xmpPacket = `<x:xmpmeta xmlns:x="adobe:ns:meta/">
  <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
    <rdf:Description rdf:about=""
        xmlns:dc="http://purl.org/dc/elements/1.1/"
        xmlns:tiff="http://ns.adobe.com/tiff/1.0/"
        tiff:Make="ACME" tiff:Model="Z-1000">
      <dc:creator><rdf:Seq><rdf:li>Jo Doe</rdf:li></rdf:Seq></dc:creator>
      <dc:subject><rdf:Bag><rdf:li>red</rdf:li><rdf:li>green</rdf:li></rdf:Bag></dc:subject>
      <dc:rights><rdf:Alt><rdf:li xml:lang="x-default">All rights reserved</rdf:li></rdf:Alt></dc:rights>
    </rdf:Description>
  </rdf:RDF>
</x:xmpmeta>`

func TestDecodeXMPPacket(t *testing.T) {
	c := qt.New(t)

	out := map[string]string{}
	err := decodeXMPPacket([]byte(xmpPacket), out)
	c.Assert(err, qt.IsNil)
	c.Assert(out["Make"], qt.Equals, "ACME")
	c.Assert(out["Model"], qt.Equals, "Z-1000")
	c.Assert(out["Creator"], qt.Equals, "Jo Doe")
	c.Assert(out["Subject"], qt.Equals, "red, green")
	c.Assert(out["Rights"], qt.Equals, "All rights reserved")
}

func TestDecodeXMPPacketInvalid(t *testing.T) {
	c := qt.New(t)

	err := decodeXMPPacket([]byte("not xml at all"), map[string]string{})
	c.Assert(err, qt.IsNotNil)
}

func TestDecodeXMPFromTIFF(t *testing.T) {
	c := qt.New(t)

	// Leading padding before the packet is skipped.
	packet := append([]byte("   \x00"), xmpPacket...)

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x02bc, typ: ttUnsignedByte, count: uint32(len(packet)), offset: 60},
	}, 0)
	b.putBytes(60, packet)

	meta, err := Decode(Options{Data: b.data()})
	c.Assert(err, qt.IsNil)
	c.Assert(meta.XMP()["Make"], qt.Equals, "ACME")

	// The packet entry itself is still listed as an Exif tag.
	_, ok := meta.EXIF()["Image.XMLPacket"]
	c.Assert(ok, qt.IsTrue)
}

func TestDecodeXMPHandleXMP(t *testing.T) {
	c := qt.New(t)

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x02bc, typ: ttUnsignedByte, count: uint32(len(xmpPacket)), offset: 60},
	}, 0)
	b.putBytes(60, []byte(xmpPacket))

	var got []byte
	meta, err := Decode(Options{
		Data: b.data(),
		HandleXMP: func(r io.Reader) error {
			var err error
			got, err = io.ReadAll(r)
			return err
		},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(string(got), qt.Equals, xmpPacket)
	// The built-in parser is bypassed.
	c.Assert(meta.XMP(), qt.HasLen, 0)
}

func TestDecodeXMPHandleXMPError(t *testing.T) {
	c := qt.New(t)

	b := newTiffBuilder(ByteOrderLittle)
	b.header(8)
	b.ifd(8, []entrySpec{
		{tag: 0x02bc, typ: ttUnsignedByte, count: uint32(len(xmpPacket)), offset: 60},
	}, 0)
	b.putBytes(60, []byte(xmpPacket))

	warnf, warnings := warnCollector()
	_, err := Decode(Options{
		Data:      b.data(),
		Warnf:     warnf,
		HandleXMP: func(r io.Reader) error { return errors.New("boom") },
	})
	c.Assert(err, qt.IsNil)
	c.Assert(*warnings, qt.Not(qt.HasLen), 0)
}

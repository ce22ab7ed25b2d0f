// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// tagDecoder flattens the component tree into the tag maps.
type tagDecoder struct {
	r    *tiffReader
	opts *Options

	cameraMake string

	exif map[string]string
	iptc map[string]string
	xmp  map[string]string

	// The IPTC block is decoded at most once, preferring the native
	// IPTC/NAA entry over the Photoshop resource block.
	iptcDecoded bool
	xmpDecoded  bool
}

type decodeFunc func(d *tagDecoder, eb *entryBase)

// decoderRow binds a tag in a group, optionally restricted to a camera
// make prefix, to its decode function.
type decoderRow struct {
	makePrefix string // "*" matches any make
	tag        uint16
	group      GroupID
	fn         decodeFunc
}

var decoderRows = []decoderRow{
	{"*", 0x02bc, groupIFD0, (*tagDecoder).decodeXmp},
	{"*", 0x83bb, groupIFD0, (*tagDecoder).decodeIptc},
	{"*", 0x8649, groupIFD0, (*tagDecoder).decodeIptc},
	{"Canon", 0x0026, groupCanon, (*tagDecoder).decodeCanonAFInfo},
}

func newTagDecoder(r *tiffReader, opts *Options) *tagDecoder {
	d := &tagDecoder{
		r:    r,
		opts: opts,
		exif: make(map[string]string),
		iptc: make(map[string]string),
		xmp:  make(map[string]string),
	}
	if me := r.findEntry(0x010f, groupIFD0); me != nil && me.value != nil {
		d.cameraMake = me.value.String()
	}
	return d
}

func (d *tagDecoder) decoderFor(tag uint16, group GroupID) decodeFunc {
	for _, row := range decoderRows {
		if row.tag != tag || row.group != group {
			continue
		}
		if row.makePrefix == "*" || strings.HasPrefix(d.cameraMake, row.makePrefix) {
			return row.fn
		}
	}
	return (*tagDecoder).decodeStdEntry
}

// decode walks the tree and fills the tag maps.
func (d *tagDecoder) decode(root *directory) {
	d.walkDirectory(root)
}

func (d *tagDecoder) walkDirectory(dir *directory) {
	for _, c := range dir.components {
		d.walk(c)
	}
	if dir.next != nil {
		d.walkDirectory(dir.next)
	}
}

func (d *tagDecoder) walk(c component) {
	switch v := c.(type) {
	case *directory:
		d.walkDirectory(v)
	case *subIFD:
		for _, ifd := range v.ifds {
			d.walkDirectory(ifd)
		}
	case *mnEntry:
		if v.mn != nil {
			d.walkMakernote(v.mn)
			return
		}
		d.decodeEntry(&v.entryBase)
	case *binaryArray:
		if v.decoded {
			for _, el := range v.elements {
				d.decodeEntry(&el.entryBase)
			}
			return
		}
		d.decodeEntry(&v.entryBase)
	case *entry:
		d.decodeEntry(&v.entryBase)
	case *dataEntry:
		d.decodeEntry(&v.entryBase)
	case *imageEntry:
		d.decodeEntry(&v.entryBase)
	case *sizeEntry:
		d.decodeEntry(&v.entryBase)
	case *binaryElement:
		d.decodeEntry(&v.entryBase)
	}
}

func (d *tagDecoder) walkMakernote(m *ifdMakernote) {
	// Synthetic fields describing the makernote container itself.
	d.setExif("MakerNote.Offset", strconv.Itoa(m.mnOffset))
	d.setExif("MakerNote.ByteOrder", m.byteOrder().String())
	if m.ifd != nil {
		d.walkDirectory(m.ifd)
	}
}

func (d *tagDecoder) decodeEntry(eb *entryBase) {
	fn := d.decoderFor(eb.tag, eb.group)
	fn(d, eb)
}

func (d *tagDecoder) decodeStdEntry(eb *entryBase) {
	if !d.opts.Sources.Has(EXIF) {
		return
	}
	if eb.value == nil {
		return
	}
	d.setExifTag(eb, tagKey(eb.tag, eb.group))
}

func tagKey(tag uint16, group GroupID) string {
	name := tagName(tag, group)
	if name == "" {
		name = fmt.Sprintf("0x%04x", tag)
	}
	return groupName(group) + "." + name
}

func (d *tagDecoder) setExifTag(eb *entryBase, key string) {
	if _, ok := d.exif[key]; ok {
		key = fmt.Sprintf("%s#%d", key, eb.idx)
	}
	d.exif[key] = eb.value.String()
}

func (d *tagDecoder) setExif(key, value string) {
	if !d.opts.Sources.Has(EXIF) {
		return
	}
	if _, ok := d.exif[key]; ok {
		return
	}
	d.exif[key] = value
}

func (d *tagDecoder) decodeXmp(eb *entryBase) {
	// The packet entry itself stays visible as an Exif tag.
	d.decodeStdEntry(eb)

	if d.xmpDecoded || len(eb.data) == 0 {
		return
	}
	d.xmpDecoded = true
	if !d.opts.Sources.Has(XMP) {
		return
	}

	// Some writers prefix the packet with padding; the XML starts at
	// the first angle bracket.
	data := eb.data
	if i := bytes.IndexByte(data, '<'); i > 0 {
		data = data[i:]
	}

	if d.opts.HandleXMP != nil {
		if err := d.opts.HandleXMP(bytes.NewReader(data)); err != nil {
			d.opts.Warnf("handling XMP packet: %v", err)
		}
		return
	}

	if err := decodeXMPPacket(data, d.xmp); err != nil {
		d.opts.Warnf("decoding XMP packet: %v", err)
	}
}

func (d *tagDecoder) decodeIptc(eb *entryBase) {
	// The triggering entry itself stays visible as an Exif tag.
	d.decodeStdEntry(eb)

	if d.iptcDecoded {
		return
	}

	// The native IPTC/NAA block wins over the Photoshop image
	// resources, whichever of the two tags is seen first.
	var data []byte
	if ne := d.r.findEntry(0x83bb, groupIFD0); ne != nil && len(ne.data) > 0 {
		data = ne.data
	} else if ie := d.r.findEntry(0x8649, groupIFD0); ie != nil && len(ie.data) > 0 {
		irb, err := locateIptcIrb(ie.data)
		if err != nil {
			d.opts.Warnf("locating IPTC block in image resources: %v", err)
			return
		}
		data = irb
	}
	if len(data) == 0 {
		return
	}

	d.iptcDecoded = true
	if !d.opts.Sources.Has(IPTC) {
		return
	}

	if err := decodeIPTCBlocks(data, d.iptc, d.opts.Warnf); err != nil {
		d.opts.Warnf("decoding IPTC datasets: %v", err)
	}
}

// canonAFRecord describes one field of the Canon AF info block. A size
// of 0 means nPoints components, -1 nMasks components.
type canonAFRecord struct {
	name string
	size int
}

var canonAFRecords = []canonAFRecord{
	{"AFInfoSize", 1},
	{"AFAreaMode", 1},
	{"AFNumPoints", 1},
	{"AFValidPoints", 1},
	{"AFCanonImageWidth", 1},
	{"AFCanonImageHeight", 1},
	{"AFImageWidth", 1},
	{"AFImageHeight", 1},
	{"AFAreaWidths", 0},
	{"AFAreaHeights", 0},
	{"AFXPositions", 0},
	{"AFYPositions", 0},
	{"AFPointsInFocus", -1},
	{"AFPointsSelected", -1},
	{"AFPrimaryPoint", 1},
}

func (d *tagDecoder) decodeCanonAFInfo(eb *entryBase) {
	if !d.opts.Sources.Has(EXIF) {
		return
	}
	if eb.value == nil || eb.tiffType != ttUnsignedShort {
		return
	}
	n := int(eb.count)
	if n < 3 || int(eb.value.uintAt(0)) != n*2 {
		d.opts.Warnf("directory Canon, entry 0x%04x: AF info size mismatch, decoded as a plain entry", eb.tag)
		d.decodeStdEntry(eb)
		return
	}

	nPoints := int(eb.value.uintAt(2))
	nMasks := (nPoints + 15) / 16

	i := 0
	for _, rec := range canonAFRecords {
		size := rec.size
		switch size {
		case 0:
			size = nPoints
		case -1:
			size = nMasks
		}
		if i+size > n {
			break
		}
		var sb strings.Builder
		for j := 0; j < size; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(int(int16(eb.value.uintAt(i + j)))))
		}
		d.setExif("Canon."+rec.name, sb.String())
		i += size
	}
}

// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

// component is a node in the parsed TIFF tree. The concrete types are
// entry, dataEntry, imageEntry, sizeEntry, directory, subIFD, mnEntry,
// ifdMakernote, binaryArray and binaryElement.
type component interface {
	ident() (uint16, GroupID)
}

// entryBase carries the fields shared by every leaf entry.
type entryBase struct {
	tag   uint16
	group GroupID

	tiffType tiffType
	count    uint32
	offset   uint32

	// data is a window into the source buffer, or an owned copy for
	// decrypted arrays and hollow buffers.
	data  []byte
	value *Value

	// idx is the 1-based position of the entry within its directory,
	// used to disambiguate duplicate tags.
	idx int

	// start is the offset of the 12-byte entry record, dataStart the
	// offset of the payload.
	start     int
	dataStart int
}

func (e *entryBase) ident() (uint16, GroupID) {
	return e.tag, e.group
}

// entry is a plain directory entry.
type entry struct {
	entryBase
}

// dataEntry points at a data area outside the entry payload, paired
// with a sizeEntry that tells how large the area is. The thumbnail
// offset/length pair in IFD1 is the canonical example.
type dataEntry struct {
	entryBase
	szTag   uint16
	szGroup GroupID

	dataArea []byte
}

// strip is one offset/length pair of an image data entry.
type strip struct {
	offset uint32
	size   uint32
	data   []byte
}

// imageEntry holds strip offsets for the primary image.
type imageEntry struct {
	entryBase
	szTag   uint16
	szGroup GroupID

	strips []strip
}

// sizeEntry is the byte-count side of a data or image entry pair.
type sizeEntry struct {
	entryBase
	dtTag   uint16
	dtGroup GroupID
}

// directory is an IFD: a counted list of entries, optionally followed
// by a pointer to the next IFD in the chain.
type directory struct {
	tag   uint16
	group GroupID

	// start is the buffer offset of the two-byte entry count.
	start int

	// hasNext is false for makernote IFDs whose format omits the
	// trailing next pointer.
	hasNext bool

	components []component
	next       *directory
}

func (d *directory) ident() (uint16, GroupID) {
	return d.tag, d.group
}

func (d *directory) addChild(c component) {
	d.components = append(d.components, c)
}

// subIFD is an entry whose payload is one or more offsets to child
// IFDs of a new group.
type subIFD struct {
	entryBase
	newGroup GroupID

	ifds []*directory
}

// mnEntry is the MakerNote entry in the Exif IFD. Its payload is
// either grafted into an ifdMakernote or kept opaque.
type mnEntry struct {
	entryBase
	mnGroup GroupID

	mn *ifdMakernote
}

// ifdMakernote wraps a vendor makernote: an optional header followed
// by an IFD in the vendor's group.
type ifdMakernote struct {
	tag   uint16
	group GroupID

	header mnHeader
	ifd    *directory

	// mnOffset is the buffer offset of the makernote payload;
	// imageByteOrder the order of the surrounding TIFF structure.
	mnOffset       int
	imageByteOrder ByteOrder
	start          int
}

func (m *ifdMakernote) ident() (uint16, GroupID) {
	return m.tag, m.group
}

// byteOrder returns the order entries inside the makernote are read
// with.
func (m *ifdMakernote) byteOrder() ByteOrder {
	if m.header != nil {
		if bo := m.header.byteOrder(); bo != ByteOrderInvalid {
			return bo
		}
	}
	return m.imageByteOrder
}

// baseOffset returns the offset pointers inside the makernote are
// relative to.
func (m *ifdMakernote) baseOffset() int {
	if m.header == nil {
		return 0
	}
	return m.header.baseOffset(m.mnOffset)
}

// binaryArray is an entry whose payload is a fixed-layout record cut
// into elements by an arrayDef table.
type binaryArray struct {
	entryBase

	set      *arraySet
	cfg      *arrayCfg
	defs     []arrayDef
	elements []*binaryElement

	// origData is the encrypted payload when cfg.crypt produced an
	// owned plaintext copy in data.
	origData []byte
	decoded  bool
}

func (a *binaryArray) addElement(idx int, def arrayDef, bo ByteOrder) *binaryElement {
	tagStep := a.cfg.tagStep()
	el := &binaryElement{
		elDef:       def,
		elByteOrder: bo,
	}
	el.tag = uint16(idx / tagStep)
	el.group = a.cfg.group
	a.elements = append(a.elements, el)
	a.decoded = true
	return el
}

// binaryElement is one element of a binaryArray.
type binaryElement struct {
	entryBase
	elDef       arrayDef
	elByteOrder ByteOrder
}

// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import "encoding/binary"

// ByteOrder identifies the byte order of a TIFF structure. The zero value
// means "not set / inherit", which Makernote headers use to signal that the
// image's byte order applies.
type ByteOrder int8

const (
	// ByteOrderInvalid is the unset byte order.
	ByteOrderInvalid ByteOrder = iota
	// ByteOrderLittle is Intel ("II") byte order.
	ByteOrderLittle
	// ByteOrderBig is Motorola ("MM") byte order.
	ByteOrderBig
)

const (
	byteOrderMarkerBig    = 0x4d4d // "MM"
	byteOrderMarkerLittle = 0x4949 // "II"

	tiffMagic = 0x002a
)

// String returns the TIFF marker string for the byte order.
func (bo ByteOrder) String() string {
	switch bo {
	case ByteOrderLittle:
		return "II"
	case ByteOrderBig:
		return "MM"
	default:
		return ""
	}
}

func (bo ByteOrder) order() binary.ByteOrder {
	if bo == ByteOrderBig {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// The accessors panic with errCorruptedMetadata on reads outside b;
// Decode recovers the panic into an InvalidFormatError.
func (bo ByteOrder) uint16(b []byte, offset int) uint16 {
	if offset < 0 || offset+2 > len(b) {
		panic(errCorruptedMetadata)
	}
	return bo.order().Uint16(b[offset : offset+2])
}

func (bo ByteOrder) uint32(b []byte, offset int) uint32 {
	if offset < 0 || offset+4 > len(b) {
		panic(errCorruptedMetadata)
	}
	return bo.order().Uint32(b[offset : offset+4])
}

func (bo ByteOrder) uint64(b []byte, offset int) uint64 {
	if offset < 0 || offset+8 > len(b) {
		panic(errCorruptedMetadata)
	}
	return bo.order().Uint64(b[offset : offset+8])
}

// tiffType is a raw 16-bit TIFF field type code as stored in an IFD entry.
type tiffType = uint16

const (
	ttUnsignedByte     tiffType = 1
	ttAsciiString      tiffType = 2
	ttUnsignedShort    tiffType = 3
	ttUnsignedLong     tiffType = 4
	ttUnsignedRational tiffType = 5
	ttSignedByte       tiffType = 6
	ttUndefined        tiffType = 7
	ttSignedShort      tiffType = 8
	ttSignedLong       tiffType = 9
	ttSignedRational   tiffType = 10
	ttTiffFloat        tiffType = 11
	ttTiffDouble       tiffType = 12
	ttTiffIfd          tiffType = 13
)

// typeID is the canonical value type of a tag. It shares the numeric space
// of the TIFF field types and adds the comment type, which has no TIFF
// encoding of its own (it travels as undefined).
type typeID uint32

const (
	typeComment typeID = 0x10005
)

// typeSize returns the size in bytes of one component of the given type,
// or 0 for unknown types. Callers degrade unknown types to size 1 with a
// warning; the format is decoded as permissively as possible.
func typeSize(t typeID) uint32 {
	switch t {
	case typeID(ttUnsignedByte), typeID(ttAsciiString), typeID(ttSignedByte), typeID(ttUndefined):
		return 1
	case typeComment:
		return 1
	case typeID(ttUnsignedShort), typeID(ttSignedShort):
		return 2
	case typeID(ttUnsignedLong), typeID(ttSignedLong), typeID(ttTiffFloat), typeID(ttTiffIfd):
		return 4
	case typeID(ttUnsignedRational), typeID(ttSignedRational), typeID(ttTiffDouble):
		return 8
	default:
		return 0
	}
}

// Tags typed undefined that hold comment-style values (charset prefix plus
// text). The type is upgraded so the decoder can strip the charset marker.
var commentTags = map[compKey]bool{
	{0x9286, groupExif}: true, // UserComment
	{0x001b, groupGPS}:  true, // GPSProcessingMethod
	{0x001c, groupGPS}:  true, // GPSAreaInformation
}

// resolveTypeID maps a raw TIFF type to the canonical type for a tag,
// applying the two known firmware quirks: comment upgrade for undefined
// comment-style tags, and unsignedByte that is really signedByte for the
// Nikon AF fine tune adjustment and the Pentax temperature tags.
func resolveTypeID(tt tiffType, tag uint16, group GroupID) typeID {
	if tt == ttUndefined && commentTags[compKey{tag, group}] {
		return typeComment
	}
	if tt == ttUnsignedByte {
		if (tag == 0x0002 && group == groupNikonAFT) || (tag == 0x0047 && group == groupPentax) {
			return typeID(ttSignedByte)
		}
	}
	return typeID(tt)
}

// GroupID is the namespace of a tag: the directory (or vendor sub-format)
// it belongs to. Tag numbers are only unique within a group.
type GroupID uint16

const (
	groupNone GroupID = iota
	groupIFD0
	groupIFD1
	groupIFD2
	groupIFD3
	groupSubImage1
	groupSubImage2
	groupSubImage3
	groupSubImage4
	groupSubImage5
	groupSubImage6
	groupSubImage7
	groupSubImage8
	groupSubImage9
	groupExif
	groupGPS
	groupIop
	groupMakerNote
	groupCanon
	groupCanonCs
	groupCanonSi
	groupMinolta
	groupNikon1
	groupNikon2
	groupNikon3
	groupNikonSi
	groupNikonCb
	groupNikonAFT
	groupOlympus
	groupOlympus2
	groupFujifilm
	groupPanasonic
	groupPentax
	groupPentaxDng
	groupSamsung
	groupSigma
	groupSony1
	groupSony2
	groupSonyCs
	groupCasio
	groupCasio2
	groupPanaRaw
	groupFujiRaw
)

var groupNames = map[GroupID]string{
	groupIFD0:      "Image",
	groupIFD1:      "Thumbnail",
	groupIFD2:      "Image2",
	groupIFD3:      "Image3",
	groupSubImage1: "SubImage1",
	groupSubImage2: "SubImage2",
	groupSubImage3: "SubImage3",
	groupSubImage4: "SubImage4",
	groupSubImage5: "SubImage5",
	groupSubImage6: "SubImage6",
	groupSubImage7: "SubImage7",
	groupSubImage8: "SubImage8",
	groupSubImage9: "SubImage9",
	groupExif:      "Photo",
	groupGPS:       "GPSInfo",
	groupIop:       "Iop",
	groupMakerNote: "MakerNote",
	groupCanon:     "Canon",
	groupCanonCs:   "CanonCs",
	groupCanonSi:   "CanonSi",
	groupMinolta:   "Minolta",
	groupNikon1:    "Nikon1",
	groupNikon2:    "Nikon2",
	groupNikon3:    "Nikon3",
	groupNikonSi:   "NikonSi",
	groupNikonCb:   "NikonCb",
	groupNikonAFT:  "NikonAFT",
	groupOlympus:   "Olympus",
	groupOlympus2:  "Olympus2",
	groupFujifilm:  "Fujifilm",
	groupPanasonic: "Panasonic",
	groupPentax:    "Pentax",
	groupPentaxDng: "PentaxDng",
	groupSamsung:   "Samsung2",
	groupSigma:     "Sigma",
	groupSony1:     "Sony1",
	groupSony2:     "Sony2",
	groupSonyCs:    "SonyCs",
	groupCasio:     "Casio",
	groupCasio2:    "Casio2",
	groupPanaRaw:   "PanaRaw",
	groupFujiRaw:   "FujiRaw",
}

func groupName(g GroupID) string {
	if s, ok := groupNames[g]; ok {
		return s
	}
	return "Unknown"
}

// compKey identifies a component in the tree.
type compKey struct {
	tag   uint16
	group GroupID
}

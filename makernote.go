// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"bytes"
	"strings"
)

// mnHeader is the vendor-specific preamble in front of a makernote
// IFD. read reports whether the payload matches the header format;
// a false return leaves the makernote opaque.
type mnHeader interface {
	read(data []byte, bo ByteOrder) bool

	// size is the byte length of the header.
	size() int
	// ifdOffset is the offset of the embedded IFD relative to the
	// start of the makernote payload.
	ifdOffset() int
	// byteOrder returns the order entries are read with, or
	// ByteOrderInvalid to inherit the image order.
	byteOrder() ByteOrder
	// baseOffset returns the base that offsets inside the makernote
	// are relative to, given the absolute offset of the payload.
	baseOffset(mnOffset int) int
}

// sigHeader covers the common case: a fixed signature, fixed sizes and
// no byte order or base of its own.
type sigHeader struct {
	sig    []byte
	hdrLen int
	ifdOff int
}

func (h *sigHeader) read(data []byte, bo ByteOrder) bool {
	return len(data) >= h.hdrLen && bytes.HasPrefix(data, h.sig)
}

func (h *sigHeader) size() int                   { return h.hdrLen }
func (h *sigHeader) ifdOffset() int              { return h.ifdOff }
func (h *sigHeader) byteOrder() ByteOrder        { return ByteOrderInvalid }
func (h *sigHeader) baseOffset(mnOffset int) int { return 0 }

// relHeader is a sigHeader whose internal offsets are relative to the
// start of the makernote payload.
type relHeader struct {
	sigHeader
}

func (h *relHeader) baseOffset(mnOffset int) int { return mnOffset }

// olympusHeader matches the original Olympus makernote format.
type olympusHeader struct{ sigHeader }

func newOlympusHeader() *olympusHeader {
	return &olympusHeader{sigHeader{sig: []byte("OLYMP\x00"), hdrLen: 8, ifdOff: 8}}
}

// olympus2Header matches the newer self-contained Olympus format.
type olympus2Header struct{ relHeader }

func newOlympus2Header() *olympus2Header {
	return &olympus2Header{relHeader{sigHeader{sig: []byte("OLYMPUS\x00II"), hdrLen: 12, ifdOff: 12}}}
}

// fujiHeader is always little endian and stores the IFD offset in the
// header itself.
type fujiHeader struct {
	start int
}

func (h *fujiHeader) read(data []byte, bo ByteOrder) bool {
	if len(data) < 12 || !bytes.HasPrefix(data, []byte("FUJIFILM")) {
		return false
	}
	h.start = int(ByteOrderLittle.uint32(data, 8))
	return true
}

func (h *fujiHeader) size() int                   { return 12 }
func (h *fujiHeader) ifdOffset() int              { return h.start }
func (h *fujiHeader) byteOrder() ByteOrder        { return ByteOrderLittle }
func (h *fujiHeader) baseOffset(mnOffset int) int { return mnOffset }

// nikon2Header matches the short Nikon format used by early cameras.
type nikon2Header struct{ sigHeader }

func newNikon2Header() *nikon2Header {
	return &nikon2Header{sigHeader{sig: []byte("Nikon\x00\x01\x00"), hdrLen: 8, ifdOff: 8}}
}

// nikon3Header embeds a complete TIFF header at offset 10, with its
// own byte order and offset base.
type nikon3Header struct {
	bo     ByteOrder
	ifdOff int
}

var nikon3Sig = []byte("Nikon\x00\x02")

func (h *nikon3Header) read(data []byte, bo ByteOrder) bool {
	if len(data) < 18 || !bytes.HasPrefix(data, nikon3Sig) {
		return false
	}
	tiff := data[10:]
	switch ByteOrderBig.uint16(tiff, 0) {
	case byteOrderMarkerBig:
		h.bo = ByteOrderBig
	case byteOrderMarkerLittle:
		h.bo = ByteOrderLittle
	default:
		return false
	}
	if h.bo.uint16(tiff, 2) != tiffMagic {
		return false
	}
	h.ifdOff = 10 + int(h.bo.uint32(tiff, 4))
	return true
}

func (h *nikon3Header) size() int                   { return 18 }
func (h *nikon3Header) ifdOffset() int              { return h.ifdOff }
func (h *nikon3Header) byteOrder() ByteOrder        { return h.bo }
func (h *nikon3Header) baseOffset(mnOffset int) int { return mnOffset + 10 }

// panasonicHeader fronts an IFD without a trailing next pointer.
type panasonicHeader struct{ sigHeader }

func newPanasonicHeader() *panasonicHeader {
	return &panasonicHeader{sigHeader{sig: []byte("Panasonic\x00\x00\x00"), hdrLen: 12, ifdOff: 12}}
}

type pentaxHeader struct{ sigHeader }

func newPentaxHeader() *pentaxHeader {
	return &pentaxHeader{sigHeader{sig: []byte("AOC\x00"), hdrLen: 6, ifdOff: 6}}
}

type pentaxDngHeader struct{ relHeader }

func newPentaxDngHeader() *pentaxDngHeader {
	return &pentaxDngHeader{relHeader{sigHeader{sig: []byte("PENTAX \x00"), hdrLen: 10, ifdOff: 10}}}
}

// samsungHeader is headerless; offsets are relative to the payload.
type samsungHeader struct{}

func (h *samsungHeader) read(data []byte, bo ByteOrder) bool { return true }
func (h *samsungHeader) size() int                           { return 0 }
func (h *samsungHeader) ifdOffset() int                      { return 0 }
func (h *samsungHeader) byteOrder() ByteOrder                { return ByteOrderInvalid }
func (h *samsungHeader) baseOffset(mnOffset int) int         { return mnOffset }

// sigmaHeader accepts either of the two signatures Sigma has used.
type sigmaHeader struct{}

func (h *sigmaHeader) read(data []byte, bo ByteOrder) bool {
	if len(data) < 10 {
		return false
	}
	return bytes.HasPrefix(data, []byte("SIGMA\x00\x00\x00")) ||
		bytes.HasPrefix(data, []byte("FOVEON\x00\x00"))
}

func (h *sigmaHeader) size() int                   { return 10 }
func (h *sigmaHeader) ifdOffset() int              { return 10 }
func (h *sigmaHeader) byteOrder() ByteOrder        { return ByteOrderInvalid }
func (h *sigmaHeader) baseOffset(mnOffset int) int { return 0 }

type sonyHeader struct{ sigHeader }

func newSonyHeader() *sonyHeader {
	return &sonyHeader{sigHeader{sig: []byte("SONY DSC \x00\x00\x00"), hdrLen: 12, ifdOff: 12}}
}

// casio2Header is always big endian.
type casio2Header struct{ sigHeader }

func newCasio2Header() *casio2Header {
	return &casio2Header{sigHeader{sig: []byte("QVC\x00\x00\x00"), hdrLen: 6, ifdOff: 6}}
}

func (h *casio2Header) byteOrder() ByteOrder { return ByteOrderBig }

// mnSpec is the result of sniffing a makernote payload: the header to
// verify, the vendor group of the embedded IFD, and whether the IFD
// carries a trailing next pointer.
type mnSpec struct {
	header  mnHeader
	group   GroupID
	hasNext bool
}

// mnCreate sniffs the payload bytes and picks the concrete variant for
// a vendor. A nil return leaves the makernote opaque.
type mnCreate func(data []byte) *mnSpec

// mnRegistryEntry maps a camera make prefix to its makernote creator.
type mnRegistryEntry struct {
	make   string
	create mnCreate
}

// mnRegistry is ordered; the first entry whose make is a prefix of the
// camera make wins.
var mnRegistry = []mnRegistryEntry{
	{"Canon", newHeaderlessMn(groupCanon)},
	{"FOVEON", newSigmaMn},
	{"FUJI", newFujiMn},
	{"KONICA MINOLTA", newHeaderlessMn(groupMinolta)},
	{"Minolta", newHeaderlessMn(groupMinolta)},
	{"NIKON", newNikonMn},
	{"OLYMPUS", newOlympusMn},
	{"Panasonic", newPanasonicMn},
	{"PENTAX", newPentaxMn},
	{"RICOH", newPentaxMn},
	{"SAMSUNG", newSamsungMn},
	{"SIGMA", newSigmaMn},
	{"SONY", newSonyMn},
	{"CASIO", newCasioMn},
}

func newHeaderlessMn(group GroupID) mnCreate {
	return func(data []byte) *mnSpec {
		return &mnSpec{group: group, hasNext: true}
	}
}

func newNikonMn(data []byte) *mnSpec {
	if bytes.HasPrefix(data, nikon3Sig) {
		return &mnSpec{header: &nikon3Header{}, group: groupNikon3, hasNext: true}
	}
	if bytes.HasPrefix(data, []byte("Nikon\x00")) {
		return &mnSpec{header: newNikon2Header(), group: groupNikon2, hasNext: true}
	}
	// Headerless notes from the earliest models.
	return &mnSpec{group: groupNikon1, hasNext: true}
}

func newOlympusMn(data []byte) *mnSpec {
	if bytes.HasPrefix(data, []byte("OLYMPUS\x00II")) {
		return &mnSpec{header: newOlympus2Header(), group: groupOlympus2, hasNext: true}
	}
	return &mnSpec{header: newOlympusHeader(), group: groupOlympus, hasNext: true}
}

func newFujiMn(data []byte) *mnSpec {
	return &mnSpec{header: &fujiHeader{}, group: groupFujifilm, hasNext: true}
}

func newPanasonicMn(data []byte) *mnSpec {
	return &mnSpec{header: newPanasonicHeader(), group: groupPanasonic, hasNext: false}
}

func newPentaxMn(data []byte) *mnSpec {
	if bytes.HasPrefix(data, []byte("PENTAX \x00")) {
		return &mnSpec{header: newPentaxDngHeader(), group: groupPentaxDng, hasNext: true}
	}
	if bytes.HasPrefix(data, []byte("AOC\x00")) {
		return &mnSpec{header: newPentaxHeader(), group: groupPentax, hasNext: true}
	}
	return nil
}

func newSamsungMn(data []byte) *mnSpec {
	return &mnSpec{header: &samsungHeader{}, group: groupSamsung, hasNext: true}
}

func newSigmaMn(data []byte) *mnSpec {
	return &mnSpec{header: &sigmaHeader{}, group: groupSigma, hasNext: true}
}

func newSonyMn(data []byte) *mnSpec {
	if bytes.HasPrefix(data, []byte("SONY DSC \x00\x00\x00")) {
		return &mnSpec{header: newSonyHeader(), group: groupSony1, hasNext: false}
	}
	// Headerless variant used by later models.
	return &mnSpec{group: groupSony2, hasNext: true}
}

func newCasioMn(data []byte) *mnSpec {
	if bytes.HasPrefix(data, []byte("QVC\x00\x00\x00")) {
		return &mnSpec{header: newCasio2Header(), group: groupCasio2, hasNext: true}
	}
	return &mnSpec{group: groupCasio, hasNext: true}
}

// sniffMakernote resolves the makernote variant for a camera make.
func sniffMakernote(cameraMake string, data []byte) *mnSpec {
	for _, e := range mnRegistry {
		if strings.HasPrefix(cameraMake, e.make) {
			return e.create(data)
		}
	}
	return nil
}

// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"strconv"
	"strings"
)

// Canon CameraSettings (tag 0x0001): a size-prefixed array of signed
// shorts, with the three-component lens element declared explicitly.
var canonCsSet = newArraySet(
	arrayCfg{
		group:        groupCanonCs,
		byteOrder:    ByteOrderInvalid,
		elTiffType:   ttUnsignedShort,
		hasSize:      true,
		elDefaultDef: arrayDef{0, ttUnsignedShort, 1},
	},
	[]arrayDef{
		{46, ttUnsignedShort, 3}, // Lens
	},
)

// Canon ShotInfo (tag 0x0004).
var canonSiSet = newArraySet(
	arrayCfg{
		group:        groupCanonSi,
		byteOrder:    ByteOrderInvalid,
		elTiffType:   ttUnsignedShort,
		hasSize:      true,
		elDefaultDef: arrayDef{0, ttUnsignedShort, 1},
	},
	nil,
)

// Nikon AF fine tune (tag 0x00b6): per-byte elements, no declared
// layout.
var nikonAftSet = newArraySet(
	arrayCfg{
		group:        groupNikonAFT,
		byteOrder:    ByteOrderInvalid,
		elTiffType:   ttUndefined,
		elDefaultDef: arrayDef{0, ttUnsignedByte, 1},
	},
	nil,
)

// arrayVersion returns the four-character ASCII version prefix of a
// makernote array payload, or "" if the payload is too short or not
// numeric.
func arrayVersion(data []byte) string {
	if len(data) < 4 {
		return ""
	}
	v := string(data[:4])
	for _, c := range v {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return v
}

// Nikon ShotInfo (tag 0x0091). Payloads with version 0200 and later
// are encrypted after the version prefix.
var nikonSiSet = &arraySet{
	selector: func(data []byte, tag uint16, group GroupID) int {
		v := arrayVersion(data)
		if v == "" {
			return -1
		}
		if v >= "0200" {
			return 1
		}
		return 0
	},
	cfgs: []arrayCfg{
		{
			group:        groupNikonSi,
			byteOrder:    ByteOrderInvalid,
			elTiffType:   ttUndefined,
			elDefaultDef: arrayDef{0, ttUnsignedByte, 1},
		},
		{
			group:        groupNikonSi,
			byteOrder:    ByteOrderInvalid,
			elTiffType:   ttUndefined,
			crypt:        nikonCrypt,
			elDefaultDef: arrayDef{0, ttUnsignedByte, 1},
		},
	},
	defs: [][]arrayDef{
		{{0, ttUndefined, 4}}, // Version
		{{0, ttUndefined, 4}}, // Version
	},
}

// Nikon ColorBalance (tag 0x0097). Version 0205 and later encrypt the
// white balance levels at offset 284.
var nikonCbSet = &arraySet{
	selector: func(data []byte, tag uint16, group GroupID) int {
		v := arrayVersion(data)
		if v == "" {
			return -1
		}
		if v >= "0205" {
			return 1
		}
		return 0
	},
	cfgs: []arrayCfg{
		{
			group:        groupNikonCb,
			byteOrder:    ByteOrderInvalid,
			elTiffType:   ttUndefined,
			elDefaultDef: arrayDef{0, ttUnsignedShort, 1},
		},
		{
			group:        groupNikonCb,
			byteOrder:    ByteOrderInvalid,
			elTiffType:   ttUndefined,
			crypt:        nikonCrypt,
			hasFillers:   true,
			concat:       true,
			elDefaultDef: arrayDef{0, ttUnsignedShort, 1},
		},
	},
	defs: [][]arrayDef{
		{{0, ttUndefined, 4}}, // Version
		{
			{0, ttUndefined, 4},       // Version
			{284, ttUnsignedShort, 4}, // WB levels
		},
	},
}

// Sony CameraSettings (tag 0x0114): always big endian; the payload
// size identifies the generation.
var sonyCsSet = &arraySet{
	selector: func(data []byte, tag uint16, group GroupID) int {
		switch len(data) {
		case 280, 364:
			return 0
		case 332:
			return 1
		default:
			return -1
		}
	},
	cfgs: []arrayCfg{
		{
			group:        groupSonyCs,
			byteOrder:    ByteOrderBig,
			elTiffType:   ttUnsignedShort,
			elDefaultDef: arrayDef{0, ttUnsignedShort, 1},
		},
		{
			group:        groupSonyCs,
			byteOrder:    ByteOrderBig,
			elTiffType:   ttUnsignedShort,
			elDefaultDef: arrayDef{0, ttUnsignedShort, 1},
		},
	},
	defs: [][]arrayDef{nil, nil},
}

var xlat0 = [256]byte{
	0xc1, 0xbf, 0x6d, 0x0d, 0x59, 0xc5, 0x13, 0x9d, 0x83, 0x61, 0x6b, 0x4f, 0xc7, 0x7f, 0x3d, 0x3d,
	0x53, 0x59, 0xe3, 0xc7, 0xe9, 0x2f, 0x95, 0xa7, 0x95, 0x1f, 0xdf, 0x7f, 0x2b, 0x29, 0xc7, 0x0d,
	0xdf, 0x07, 0xef, 0x71, 0x89, 0x3d, 0x13, 0x3d, 0x3b, 0x13, 0xfb, 0x0d, 0x89, 0xc1, 0x65, 0x1f,
	0xb3, 0x0d, 0x6b, 0x29, 0xe3, 0xfb, 0xef, 0xa3, 0x6b, 0x47, 0x7f, 0x95, 0x35, 0xa7, 0x47, 0x4f,
	0xc7, 0xf1, 0x59, 0x95, 0x35, 0x11, 0x29, 0x61, 0xf1, 0x3d, 0xb3, 0x2b, 0x0d, 0x43, 0x89, 0xc1,
	0x9d, 0x9d, 0x89, 0x65, 0xf1, 0xe9, 0xdf, 0xbf, 0x3d, 0x7f, 0x53, 0x97, 0xe5, 0xe9, 0x95, 0x17,
	0x1d, 0x3d, 0x8b, 0xfb, 0xc7, 0xe3, 0x67, 0xa7, 0x07, 0xf1, 0x71, 0xa7, 0x53, 0xb5, 0x29, 0x89,
	0xe5, 0x2b, 0xa7, 0x17, 0x29, 0xe9, 0x4f, 0xc5, 0x65, 0x6d, 0x6b, 0xef, 0x0d, 0x89, 0x49, 0x2f,
	0xb3, 0x43, 0x53, 0x65, 0x1d, 0x49, 0xa3, 0x13, 0x89, 0x59, 0xef, 0x6b, 0xef, 0x65, 0x1d, 0x0b,
	0x59, 0x13, 0xe3, 0x4f, 0x9d, 0xb3, 0x29, 0x43, 0x2b, 0x07, 0x1d, 0x95, 0x59, 0x59, 0x47, 0xfb,
	0xe5, 0xe9, 0x61, 0x47, 0x2f, 0x35, 0x7f, 0x17, 0x7f, 0xef, 0x7f, 0x95, 0x95, 0x71, 0xd3, 0xa3,
	0x0b, 0x71, 0xa3, 0xad, 0x0b, 0x3b, 0xb5, 0xfb, 0xa3, 0xbf, 0x4f, 0x83, 0x1d, 0xad, 0xe9, 0x2f,
	0x71, 0x65, 0xa3, 0xe5, 0x07, 0x35, 0x3d, 0x0d, 0xb5, 0xe9, 0xe5, 0x47, 0x3b, 0x9d, 0xef, 0x35,
	0xa3, 0xbf, 0xb3, 0xdf, 0x53, 0xd3, 0x97, 0x53, 0x49, 0x71, 0x07, 0x35, 0x61, 0x71, 0x2f, 0x43,
	0x2f, 0x11, 0xdf, 0x17, 0x97, 0xfb, 0x95, 0x3b, 0x7f, 0x6b, 0xd3, 0x25, 0xbf, 0xad, 0xc7, 0xc5,
	0xc5, 0xb5, 0x8b, 0xef, 0x2f, 0xd3, 0x07, 0x6b, 0x25, 0x49, 0x95, 0x25, 0x49, 0x6d, 0x71, 0xc7,
}

var xlat1 = [256]byte{
	0xa7, 0xbc, 0xc9, 0xad, 0x91, 0xdf, 0x85, 0xe5, 0xd4, 0x78, 0xd5, 0x17, 0x46, 0x7c, 0x29, 0x4c,
	0x4d, 0x03, 0xe9, 0x25, 0x68, 0x11, 0x86, 0xb3, 0xbd, 0xf7, 0x6f, 0x61, 0x22, 0xa2, 0x26, 0x34,
	0x2a, 0xbe, 0x1e, 0x46, 0x14, 0x68, 0x9d, 0x44, 0x18, 0xc2, 0x40, 0xf4, 0x7e, 0x5f, 0x1b, 0xad,
	0x0b, 0x94, 0xb6, 0x67, 0xb4, 0x0b, 0xe1, 0xea, 0x95, 0x9c, 0x66, 0xdc, 0xe7, 0x5d, 0x6c, 0x05,
	0xda, 0xd5, 0xdf, 0x7a, 0xef, 0xf6, 0xdb, 0x1f, 0x82, 0x4c, 0xc0, 0x68, 0x47, 0xa1, 0xbd, 0xee,
	0x39, 0x50, 0x56, 0x4a, 0xdd, 0xdf, 0xa5, 0xf8, 0xc6, 0xda, 0xca, 0x90, 0xca, 0x01, 0x42, 0x9d,
	0x8b, 0x0c, 0x73, 0x43, 0x75, 0x05, 0x94, 0xde, 0x24, 0xb3, 0x80, 0x34, 0xe5, 0x2c, 0xdc, 0x9b,
	0x3f, 0xca, 0x33, 0x45, 0xd0, 0xdb, 0x5f, 0xf5, 0x52, 0xc3, 0x21, 0xda, 0xe2, 0x22, 0x72, 0x6b,
	0x3e, 0xd0, 0x5b, 0xa8, 0x87, 0x8c, 0x06, 0x5d, 0x0f, 0xdd, 0x09, 0x19, 0x93, 0xd0, 0xb9, 0xfc,
	0x8b, 0x0f, 0x84, 0x60, 0x33, 0x1c, 0x9b, 0x45, 0xf1, 0xf0, 0xa3, 0x94, 0x3a, 0x12, 0x77, 0x33,
	0x4d, 0x44, 0x78, 0x28, 0x3c, 0x9e, 0xfd, 0x65, 0x57, 0x16, 0x94, 0x6b, 0xfb, 0x59, 0xd0, 0xc8,
	0x22, 0x36, 0xdb, 0xd2, 0x63, 0x98, 0x43, 0xa1, 0x04, 0x87, 0x86, 0xf7, 0xa6, 0x26, 0xbb, 0xd6,
	0x59, 0x4d, 0xbf, 0x6a, 0x2e, 0xaa, 0x2b, 0xef, 0xe6, 0x78, 0xb6, 0x4e, 0xe0, 0x2f, 0xdc, 0x7c,
	0xbe, 0x57, 0x19, 0x32, 0x7e, 0x2a, 0xd0, 0xb8, 0xba, 0x29, 0x00, 0x3c, 0x52, 0x7d, 0xa8, 0x49,
	0x3b, 0x2d, 0xeb, 0x25, 0x49, 0xfa, 0xa3, 0xaa, 0x39, 0xa7, 0xc5, 0xa7, 0x50, 0x11, 0x36, 0xfb,
	0xc6, 0x67, 0x4a, 0xf5, 0xa5, 0x12, 0x65, 0x7e, 0xb0, 0xdf, 0xaf, 0x4e, 0xb3, 0x61, 0x7f, 0x2f,
}

// nikonCryptStart maps the array tag to the offset where the encrypted
// region starts.
var nikonCryptStart = map[uint16]int{
	0x0091: 4,
	0x0097: 284,
	0x0098: 4,
	0x00a8: 4,
}

// nikonCrypt descrambles a Nikon makernote array. The key is derived
// from the camera serial number (tag 0x001d) and the shutter count
// (tag 0x00a7) of the surrounding Nikon IFD. A nil return leaves the
// payload undecoded.
func nikonCrypt(tag uint16, data []byte, r *tiffReader) []byte {
	start, ok := nikonCryptStart[tag]
	if !ok || len(data) <= start {
		return nil
	}

	serialEntry := r.findEntry(0x001d, groupNikon3)
	countEntry := r.findEntry(0x00a7, groupNikon3)
	if serialEntry == nil || countEntry == nil {
		return nil
	}

	serial, ok := nikonSerialKey(serialEntry.value)
	if !ok {
		return nil
	}
	count := countEntry.value.uintAt(0)

	sKey := byte(serial)
	var cKey byte
	for i := 0; i < 4; i++ {
		cKey ^= byte(count >> (i * 8))
	}

	ci := xlat0[sKey]
	cj := xlat1[cKey]
	ck := byte(0x60)

	out := make([]byte, len(data))
	copy(out, data[:start])
	for i := start; i < len(data); i++ {
		cj += ci * ck
		ck++
		out[i] = data[i] ^ cj
	}
	return out
}

// nikonSerialKey turns the serial number value into the numeric key.
// The serial is stored as an ASCII string; non-digit noise around the
// number is ignored.
func nikonSerialKey(v *Value) (uint32, bool) {
	if v == nil {
		return 0, false
	}
	s := printableString(string(trimBytesNulls(v.Bytes())))
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

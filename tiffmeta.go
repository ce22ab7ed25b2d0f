// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package tiffmeta decodes Exif, IPTC and XMP metadata from TIFF
// structures: regular TIFF/Exif blobs and the TIFF-shaped raw formats
// that embed them. The decoder is deliberately permissive; structural
// problems in the input produce warnings and a partial result rather
// than an error.
package tiffmeta

import (
	"fmt"
	"io"
)

// Source is a bitmask of metadata sources to decode.
type Source uint32

const (
	// EXIF is the TIFF/Exif tag tree, makernotes included.
	EXIF Source = 1 << iota
	// IPTC is the IPTC/NAA block, native or inside Photoshop image
	// resources.
	IPTC
	// XMP is the XML packet in IFD0.
	XMP
)

// Has reports whether s contains source c.
func (s Source) Has(c Source) bool {
	return s&c != 0
}

const (
	// defaultLimitDirEntries caps the entry count of a single IFD;
	// larger counts mark the directory as invalid.
	defaultLimitDirEntries = 256
	// defaultLimitSubIFDs caps how many sub-IFDs a single entry can
	// point to.
	defaultLimitSubIFDs = 9
)

// Options configures Decode.
type Options struct {
	// Data is the TIFF structure to decode, starting at the byte
	// order marker.
	Data []byte

	// Root selects the root directory layout. The zero value is a
	// regular TIFF/Exif structure.
	Root RootTag

	// Sources limits what gets decoded. Defaults to all sources.
	Sources Source

	// Warnf is called for recoverable problems in the input. Defaults
	// to a no-op.
	Warnf func(string, ...any)

	// HandleXMP is invoked with the raw XMP packet instead of the
	// built-in parser when set.
	HandleXMP func(r io.Reader) error

	// LimitDirEntries overrides the directory entry cap.
	LimitDirEntries uint16

	// LimitSubIFDs overrides the sub-IFD cap.
	LimitSubIFDs int
}

// Metadata is the decoded result.
type Metadata struct {
	byteOrder ByteOrder

	exif map[string]string
	iptc map[string]string
	xmp  map[string]string
}

// ByteOrder returns the byte order of the TIFF structure.
func (m *Metadata) ByteOrder() ByteOrder {
	return m.byteOrder
}

// EXIF returns the Exif tags keyed by "GroupName.TagName". Duplicate
// tags get a "#<idx>" suffix.
func (m *Metadata) EXIF() map[string]string {
	return m.exif
}

// IPTC returns the IPTC datasets keyed by "RecordName.DatasetName".
func (m *Metadata) IPTC() map[string]string {
	return m.iptc
}

// XMP returns the XMP properties keyed by their local name.
func (m *Metadata) XMP() map[string]string {
	return m.xmp
}

// Decode decodes the metadata in opts.Data.
func Decode(opts Options) (meta *Metadata, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok || !isInvalidFormatErrorCandidate(rerr) {
				panic(r)
			}
			err = newInvalidFormatError(rerr)
		}
	}()

	if opts.Warnf == nil {
		opts.Warnf = func(string, ...any) {}
	}
	if opts.Sources == 0 {
		opts.Sources = EXIF | IPTC | XMP
	}
	if opts.LimitDirEntries == 0 {
		opts.LimitDirEntries = defaultLimitDirEntries
	}
	if opts.LimitSubIFDs == 0 {
		opts.LimitSubIFDs = defaultLimitSubIFDs
	}

	// The header reads below panic on truncated buffers; the recover
	// above turns that into an InvalidFormatError.
	buf := opts.Data

	var bo ByteOrder
	switch ByteOrderBig.uint16(buf, 0) {
	case byteOrderMarkerBig:
		bo = ByteOrderBig
	case byteOrderMarkerLittle:
		bo = ByteOrderLittle
	default:
		return nil, newInvalidFormatErrorf("unknown byte order marker %q", buf[:2])
	}

	magic := bo.uint16(buf, 2)
	if magic != tiffMagic && !(opts.Root == RootPanasonicRaw && magic == rw2Magic) {
		return nil, newInvalidFormatErrorf("unknown TIFF magic 0x%04x", magic)
	}

	firstOffset := bo.uint32(buf, 4)
	if firstOffset < 8 || int64(firstOffset) >= int64(len(buf)) {
		return nil, newInvalidFormatErrorf("root directory offset %d out of bounds", firstOffset)
	}

	root := &directory{
		group:   opts.Root.rootGroup(),
		start:   int(firstOffset),
		hasNext: true,
	}

	r := newTiffReader(buf, bo, &opts)
	if err := r.read(root); err != nil {
		return nil, fmt.Errorf("reading TIFF structure: %w", err)
	}

	d := newTagDecoder(r, &opts)
	d.decode(root)

	return &Metadata{
		byteOrder: bo,
		exif:      d.exif,
		iptc:      d.iptc,
		xmp:       d.xmp,
	}, nil
}

// rw2Magic is the header magic of Panasonic RW2 raw files.
const rw2Magic = 0x0055

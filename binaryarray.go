// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

// cfgSelector picks an arrayCfg for a tag based on the raw payload,
// e.g. on a version prefix or the payload size. It returns the index
// into the set, or -1 if none matches.
type cfgSelector func(data []byte, tag uint16, group GroupID) int

// cryptFunc decrypts an array payload into a fresh buffer. A nil
// return means decryption was not possible and the array stays
// undecoded.
type cryptFunc func(tag uint16, data []byte, r *tiffReader) []byte

// arrayCfg describes the layout of one binary array flavour.
type arrayCfg struct {
	group      GroupID
	byteOrder  ByteOrder // ByteOrderInvalid means inherit
	elTiffType tiffType  // type of the size element

	crypt cryptFunc

	// hasSize marks arrays whose first element holds the byte size of
	// the array itself.
	hasSize bool
	// hasFillers pads short payloads so every declared element
	// materializes.
	hasFillers bool
	// concat merges undeclared gaps into single filler elements.
	concat bool

	elDefaultDef arrayDef
}

// tagStep is the width in bytes of one element index unit, derived
// from the default element definition.
func (c *arrayCfg) tagStep() int {
	s := c.elDefaultDef.size(0, c.group)
	if s == 0 {
		return 1
	}
	return s
}

// arrayDef declares one element of a binary array at byte index idx.
type arrayDef struct {
	idx      int
	tiffType tiffType
	count    uint32
}

func (d arrayDef) size(tag uint16, group GroupID) int {
	typ := resolveTypeID(d.tiffType, tag, group)
	s := typeSize(typ)
	if s == 0 {
		s = 1
	}
	n := int(d.count)
	if n == 0 {
		n = 1
	}
	return int(s) * n
}

// arraySet couples a selector with the cfg/def pairs it chooses from.
type arraySet struct {
	selector cfgSelector
	cfgs     []arrayCfg
	defs     [][]arrayDef
}

// pick resolves the cfg and defs for a payload. For single-cfg sets
// the selector may be nil.
func (s *arraySet) pick(data []byte, tag uint16, group GroupID) (*arrayCfg, []arrayDef) {
	if s.selector == nil {
		if len(s.cfgs) == 0 {
			return nil, nil
		}
		return &s.cfgs[0], s.defs[0]
	}
	i := s.selector(data, tag, group)
	if i < 0 || i >= len(s.cfgs) {
		return nil, nil
	}
	var defs []arrayDef
	if i < len(s.defs) {
		defs = s.defs[i]
	}
	return &s.cfgs[i], defs
}

func newArraySet(cfg arrayCfg, defs []arrayDef) *arraySet {
	return &arraySet{cfgs: []arrayCfg{cfg}, defs: [][]arrayDef{defs}}
}

// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

// RootTag selects the root directory layout of the TIFF structure.
type RootTag uint8

const (
	// RootStandard is a regular TIFF/Exif structure starting at IFD0.
	RootStandard RootTag = iota
	// RootPanasonicRaw is the RW2 raw structure.
	RootPanasonicRaw
	// RootFujiRaw is the RAF raw structure.
	RootFujiRaw

	// The CR3 metadata boxes each hold a standalone TIFF structure
	// rooted in a different group.
	RootCR3CMT1 // IFD0
	RootCR3CMT2 // Exif
	RootCR3CMT3 // Canon makernote
	RootCR3CMT4 // GPS
)

func (r RootTag) rootGroup() GroupID {
	switch r {
	case RootPanasonicRaw:
		return groupPanaRaw
	case RootFujiRaw:
		return groupFujiRaw
	case RootCR3CMT2:
		return groupExif
	case RootCR3CMT3:
		return groupCanon
	case RootCR3CMT4:
		return groupGPS
	default:
		return groupIFD0
	}
}

// Extended tags: synthetic tag numbers above the 16-bit range used to
// register structural rows that plain tags cannot express.
const (
	tagRoot uint32 = 0x20000
	tagNext uint32 = 0x30000
	tagAll  uint32 = 0x40000
)

type compFactory func(tag uint16, group GroupID) component

type creatorKey struct {
	extTag uint32
	group  GroupID
}

func newEntry(tag uint16, group GroupID) component {
	return &entry{entryBase{tag: tag, group: group}}
}

func newDirectoryFactory(group GroupID, hasNext bool) compFactory {
	return func(tag uint16, _ GroupID) component {
		return &directory{tag: tag, group: group, hasNext: hasNext}
	}
}

func newSubIFDFactory(newGroup GroupID) compFactory {
	return func(tag uint16, group GroupID) component {
		return &subIFD{entryBase: entryBase{tag: tag, group: group}, newGroup: newGroup}
	}
}

func newMnEntryFactory() compFactory {
	return func(tag uint16, group GroupID) component {
		return &mnEntry{entryBase: entryBase{tag: tag, group: group}, mnGroup: groupMakerNote}
	}
}

func newImageEntryFactory(szTag uint16, szGroup GroupID) compFactory {
	return func(tag uint16, group GroupID) component {
		return &imageEntry{entryBase: entryBase{tag: tag, group: group}, szTag: szTag, szGroup: szGroup}
	}
}

func newDataEntryFactory(szTag uint16, szGroup GroupID) compFactory {
	return func(tag uint16, group GroupID) component {
		return &dataEntry{entryBase: entryBase{tag: tag, group: group}, szTag: szTag, szGroup: szGroup}
	}
}

func newSizeEntryFactory(dtTag uint16, dtGroup GroupID) compFactory {
	return func(tag uint16, group GroupID) component {
		return &sizeEntry{entryBase: entryBase{tag: tag, group: group}, dtTag: dtTag, dtGroup: dtGroup}
	}
}

func newBinaryArrayFactory(set *arraySet) compFactory {
	return func(tag uint16, group GroupID) component {
		return &binaryArray{entryBase: entryBase{tag: tag, group: group}, set: set}
	}
}

// creatorTable maps (extended tag, group) to the component the tag
// creates. Groups with a tagAll row accept any tag; tags in groups
// without one are ignored.
var creatorTable = map[creatorKey]compFactory{}

func register(extTag uint32, group GroupID, f compFactory) {
	creatorTable[creatorKey{extTag, group}] = f
}

func registerPlain(groups ...GroupID) {
	for _, g := range groups {
		register(tagAll, g, newEntry)
	}
}

func init() {
	// IFD0 and the thumbnail chain.
	registerPlain(groupIFD0, groupIFD1, groupIFD2, groupIFD3)
	register(tagNext, groupIFD0, newDirectoryFactory(groupIFD1, true))
	register(tagNext, groupIFD1, newDirectoryFactory(groupIFD2, true))
	register(tagNext, groupIFD2, newDirectoryFactory(groupIFD3, true))
	register(0x8769, groupIFD0, newSubIFDFactory(groupExif))
	register(0x8825, groupIFD0, newSubIFDFactory(groupGPS))
	register(0x014a, groupIFD0, newSubIFDFactory(groupSubImage1))
	register(0x0111, groupIFD0, newImageEntryFactory(0x0117, groupIFD0))
	register(0x0117, groupIFD0, newSizeEntryFactory(0x0111, groupIFD0))
	register(0x0201, groupIFD1, newDataEntryFactory(0x0202, groupIFD1))
	register(0x0202, groupIFD1, newSizeEntryFactory(0x0201, groupIFD1))
	register(0x0111, groupIFD1, newImageEntryFactory(0x0117, groupIFD1))
	register(0x0117, groupIFD1, newSizeEntryFactory(0x0111, groupIFD1))

	// Sub images carry their own strip pairs.
	for g := groupSubImage1; g <= groupSubImage9; g++ {
		registerPlain(g)
		register(0x0111, g, newImageEntryFactory(0x0117, g))
		register(0x0117, g, newSizeEntryFactory(0x0111, g))
		register(0x0201, g, newDataEntryFactory(0x0202, g))
		register(0x0202, g, newSizeEntryFactory(0x0201, g))
	}

	// Exif, GPS and interoperability.
	registerPlain(groupExif, groupGPS, groupIop)
	register(0xa005, groupExif, newSubIFDFactory(groupIop))
	register(0x927c, groupExif, newMnEntryFactory())

	// Raw roots.
	registerPlain(groupPanaRaw, groupFujiRaw)
	register(0x8769, groupPanaRaw, newSubIFDFactory(groupExif))
	register(0x0111, groupPanaRaw, newImageEntryFactory(0x0117, groupPanaRaw))
	register(0x0117, groupPanaRaw, newSizeEntryFactory(0x0111, groupPanaRaw))

	// Vendor makernote groups.
	registerPlain(
		groupCanon, groupMinolta,
		groupNikon1, groupNikon2, groupNikon3,
		groupOlympus, groupOlympus2, groupFujifilm,
		groupPanasonic, groupPentax, groupPentaxDng,
		groupSamsung, groupSigma,
		groupSony1, groupSony2,
		groupCasio, groupCasio2)

	// Binary arrays inside makernotes.
	register(0x0001, groupCanon, newBinaryArrayFactory(canonCsSet))
	register(0x0004, groupCanon, newBinaryArrayFactory(canonSiSet))
	register(0x0091, groupNikon3, newBinaryArrayFactory(nikonSiSet))
	register(0x0097, groupNikon3, newBinaryArrayFactory(nikonCbSet))
	register(0x00b6, groupNikon3, newBinaryArrayFactory(nikonAftSet))
	register(0x0114, groupSony1, newBinaryArrayFactory(sonyCsSet))
	register(0x0114, groupSony2, newBinaryArrayFactory(sonyCsSet))
}

// create resolves a tag read in a group to its component, or nil if
// the tag should be ignored.
func create(tag uint16, group GroupID) component {
	if f, ok := creatorTable[creatorKey{uint32(tag), group}]; ok {
		return f(tag, group)
	}
	if f, ok := creatorTable[creatorKey{tagAll, group}]; ok {
		return f(tag, group)
	}
	return nil
}

// createNext resolves the next-IFD pointer of a directory, or nil if
// the chain ends structurally.
func createNext(group GroupID) *directory {
	f, ok := creatorTable[creatorKey{tagNext, group}]
	if !ok {
		return nil
	}
	d, _ := f(0, group).(*directory)
	return d
}

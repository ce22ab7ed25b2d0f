// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"math"
)

// rwState is the read context: the byte order entries are read with
// and the base that offsets are relative to. Makernotes override it
// for the duration of their sub-tree.
type rwState struct {
	bo   ByteOrder
	base int
}

// postItem is a binary array whose decode is deferred until the whole
// tree has been read, together with the state it was found in.
type postItem struct {
	arr   *binaryArray
	state rwState
}

// tiffReader builds the component tree from the raw buffer.
type tiffReader struct {
	buf  []byte
	opts *Options

	root  *directory
	state rwState
	orig  rwState

	// visited guards against circular next/sub-IFD pointers, keyed by
	// directory start offset.
	visited map[int]bool

	idxSeq map[GroupID]int
	index  map[compKey]component

	postList []postItem
	postProc bool

	// mnOK is cleared when a makernote header does not verify; the
	// makernote slot then stays an opaque entry.
	mnOK bool

	dataEntries  []*dataEntry
	imageEntries []*imageEntry
}

func newTiffReader(buf []byte, bo ByteOrder, opts *Options) *tiffReader {
	st := rwState{bo: bo, base: 0}
	return &tiffReader{
		buf:     buf,
		opts:    opts,
		state:   st,
		orig:    st,
		visited: make(map[int]bool),
		idxSeq:  make(map[GroupID]int),
		index:   make(map[compKey]component),
	}
}

func (r *tiffReader) warnf(format string, args ...any) {
	r.opts.Warnf(format, args...)
}

// entryBaseOf returns the shared entry fields of a leaf component, or
// nil for directories and makernote wrappers.
func entryBaseOf(c component) *entryBase {
	switch v := c.(type) {
	case *entry:
		return &v.entryBase
	case *dataEntry:
		return &v.entryBase
	case *imageEntry:
		return &v.entryBase
	case *sizeEntry:
		return &v.entryBase
	case *subIFD:
		return &v.entryBase
	case *mnEntry:
		return &v.entryBase
	case *binaryArray:
		return &v.entryBase
	case *binaryElement:
		return &v.entryBase
	}
	return nil
}

func (r *tiffReader) findEntry(tag uint16, group GroupID) *entryBase {
	c, ok := r.index[compKey{tag, group}]
	if !ok {
		return nil
	}
	return entryBaseOf(c)
}

func (r *tiffReader) record(c component) {
	tag, group := c.ident()
	k := compKey{tag, group}
	if _, ok := r.index[k]; !ok {
		r.index[k] = c
	}
}

// read builds the tree under the root directory and resolves the
// deferred work: binary arrays and strip pairings.
func (r *tiffReader) read(root *directory) error {
	r.root = root
	if err := r.readDirectory(root); err != nil {
		return err
	}

	r.postProc = true
	for _, it := range r.postList {
		r.state = it.state
		r.readBinaryArray(it.arr)
	}
	r.state = r.orig

	r.fixupDataAreas()
	return nil
}

func (r *tiffReader) readDirectory(d *directory) error {
	start := d.start
	if r.visited[start] {
		r.warnf("directory %s, entry 0x%04x: circular reference, directory at offset %d not read again", groupName(d.group), d.tag, start)
		return nil
	}
	r.visited[start] = true

	if start < 0 || start+2 > len(r.buf) {
		r.warnf("directory %s: offset %d out of bounds", groupName(d.group), start)
		return nil
	}

	bo := r.state.bo
	n := bo.uint16(r.buf, start)
	if n > r.opts.LimitDirEntries {
		r.warnf("directory %s with %d entries considered invalid, not read", groupName(d.group), n)
		return nil
	}

	for i := 0; i < int(n); i++ {
		o := start + 2 + i*12
		if o+12 > len(r.buf) {
			r.warnf("directory %s: truncated after %d of %d entries", groupName(d.group), i, n)
			break
		}
		tag := bo.uint16(r.buf, o)
		c := create(tag, d.group)
		if c == nil {
			continue
		}
		eb := entryBaseOf(c)
		if eb == nil {
			continue
		}
		eb.start = o
		r.idxSeq[d.group]++
		eb.idx = r.idxSeq[d.group]
		d.addChild(c)
	}

	if d.hasNext {
		o := start + 2 + int(n)*12
		if o+4 <= len(r.buf) {
			next := bo.uint32(r.buf, o)
			if next != 0 {
				nd := createNext(d.group)
				addr := r.state.base + int(next)
				switch {
				case nd == nil:
					r.warnf("directory %s: ignoring next pointer, chain ends here", groupName(d.group))
				case addr < 0 || addr+2 > len(r.buf):
					r.warnf("directory %s: next pointer %d out of bounds, ignored", groupName(d.group), next)
				default:
					nd.start = addr
					d.next = nd
				}
			}
		}
	}

	for _, c := range d.components {
		if err := r.readComponent(c); err != nil {
			return err
		}
	}

	if d.next != nil {
		if err := r.readDirectory(d.next); err != nil {
			return err
		}
	}

	return nil
}

func (r *tiffReader) readComponent(c component) error {
	switch v := c.(type) {
	case *entry:
		if err := r.readEntryBase(&v.entryBase); err != nil {
			return err
		}
		r.record(v)
	case *sizeEntry:
		if err := r.readEntryBase(&v.entryBase); err != nil {
			return err
		}
		r.record(v)
	case *dataEntry:
		if err := r.readEntryBase(&v.entryBase); err != nil {
			return err
		}
		r.record(v)
		r.dataEntries = append(r.dataEntries, v)
	case *imageEntry:
		if err := r.readEntryBase(&v.entryBase); err != nil {
			return err
		}
		r.record(v)
		r.imageEntries = append(r.imageEntries, v)
	case *subIFD:
		if err := r.readEntryBase(&v.entryBase); err != nil {
			return err
		}
		r.record(v)
		return r.readSubIFD(v)
	case *mnEntry:
		if err := r.readEntryBase(&v.entryBase); err != nil {
			return err
		}
		r.record(v)
		return r.readMnEntry(v)
	case *binaryArray:
		if err := r.readEntryBase(&v.entryBase); err != nil {
			return err
		}
		r.record(v)
		if !r.postProc {
			r.postList = append(r.postList, postItem{arr: v, state: r.state})
			return nil
		}
		r.readBinaryArray(v)
	case *directory:
		return r.readDirectory(v)
	}
	return nil
}

func (r *tiffReader) readEntryBase(eb *entryBase) error {
	bo := r.state.bo
	o := eb.start

	eb.tiffType = bo.uint16(r.buf, o+2)
	eb.count = bo.uint32(r.buf, o+4)

	typ := resolveTypeID(eb.tiffType, eb.tag, eb.group)
	ts := typeSize(typ)
	if ts == 0 {
		r.warnf("directory %s, entry 0x%04x has unknown type %d, assuming size 1", groupName(eb.group), eb.tag, eb.tiffType)
		ts = 1
	}

	// Implausible counts mark a corrupt entry; the entry is kept with
	// an empty value so the tag presence is still visible.
	if eb.count >= 0x10000000 {
		r.warnf("directory %s, entry 0x%04x has invalid size %d*%d, skipping entry", groupName(eb.group), eb.tag, eb.count, ts)
		eb.value = newValue(typ, 0, nil, bo)
		return nil
	}
	if eb.count > math.MaxUint32/ts {
		return errArithmeticOverflow
	}

	size := int(ts * eb.count)
	if size <= 4 {
		eb.dataStart = o + 8
		eb.data = r.buf[o+8 : o+8+size]
	} else {
		eb.offset = bo.uint32(r.buf, o+8)
		eb.dataStart = r.state.base + int(eb.offset)
		if eb.dataStart < 0 || eb.dataStart+size > len(r.buf) {
			if eb.tag == 0x2001 && eb.group == groupSony1 {
				// The Sony preview image tag regularly points past the
				// buffer in files that are otherwise fine. Keep the
				// declared size so the tag survives.
				eb.data = make([]byte, size)
			} else {
				r.warnf("directory %s, entry 0x%04x: data area exceeds buffer, ignoring value", groupName(eb.group), eb.tag)
				eb.data = nil
				size = 0
			}
		} else {
			eb.data = r.buf[eb.dataStart : eb.dataStart+size]
		}
	}

	eb.value = newValue(typ, eb.count, eb.data, bo)
	return nil
}

func (r *tiffReader) readSubIFD(s *subIFD) error {
	switch s.tiffType {
	case ttUnsignedLong, ttSignedLong, ttTiffIfd:
	default:
		r.warnf("directory %s, entry 0x%04x is not an IFD pointer (type %d), ignored", groupName(s.group), s.tag, s.tiffType)
		return nil
	}

	limit := r.opts.LimitSubIFDs
	if s.group == groupIFD1 {
		limit = 1
	}
	n := int(s.count)
	if n > limit {
		r.warnf("directory %s, entry 0x%04x: only the first %d of %d sub-IFDs will be read", groupName(s.group), s.tag, limit, n)
		n = limit
	}

	for i := 0; i < n; i++ {
		group := s.newGroup
		if i > 0 {
			if group < groupSubImage1 || group+GroupID(i) > groupSubImage9 {
				break
			}
			group += GroupID(i)
		}
		off := s.value.uintAt(i)
		addr := r.state.base + int(off)
		if addr < 0 || addr+2 > len(r.buf) {
			r.warnf("directory %s, entry 0x%04x: sub-IFD offset %d out of bounds, ignored", groupName(s.group), s.tag, off)
			continue
		}
		d := &directory{tag: s.tag, group: group, start: addr, hasNext: true}
		s.ifds = append(s.ifds, d)
		if err := r.readDirectory(d); err != nil {
			return err
		}
	}
	return nil
}

func (r *tiffReader) readMnEntry(m *mnEntry) error {
	if len(m.data) == 0 {
		return nil
	}
	makeEntry := r.findEntry(0x010f, groupIFD0)
	if makeEntry == nil || makeEntry.value == nil {
		return nil
	}
	cameraMake := makeEntry.value.String()

	spec := sniffMakernote(cameraMake, m.data)
	if spec == nil {
		return nil
	}

	mn := &ifdMakernote{
		tag:            m.tag,
		group:          m.mnGroup,
		mnOffset:       m.dataStart,
		imageByteOrder: r.orig.bo,
		start:          m.dataStart,
	}
	if err := r.readIfdMakernote(mn, spec); err != nil {
		return err
	}
	if r.mnOK {
		m.mn = mn
	}
	return nil
}

func (r *tiffReader) readIfdMakernote(m *ifdMakernote, spec *mnSpec) error {
	r.mnOK = true

	data := r.buf[m.mnOffset:]
	if spec.header != nil {
		if !spec.header.read(data, r.state.bo) {
			r.warnf("makernote header of %s not recognized, makernote kept as undecoded bytes", groupName(spec.group))
			r.mnOK = false
			return nil
		}
		m.header = spec.header
	}

	ifdOff := 0
	if m.header != nil {
		ifdOff = m.header.ifdOffset()
	}

	ifd := &directory{
		tag:     m.tag,
		group:   spec.group,
		start:   m.mnOffset + ifdOff,
		hasNext: spec.hasNext,
	}
	m.ifd = ifd

	saved := r.state
	r.state = rwState{bo: m.byteOrder(), base: m.baseOffset()}
	err := r.readDirectory(ifd)
	r.state = saved
	return err
}

func (r *tiffReader) readBinaryArray(a *binaryArray) {
	if a.decoded {
		r.warnf("directory %s, entry 0x%04x: duplicate binary array, not decoded again", groupName(a.group), a.tag)
		return
	}
	data := a.data
	if len(data) == 0 {
		return
	}

	cfg, defs := a.set.pick(data, a.tag, a.group)
	if cfg == nil {
		return
	}
	a.cfg, a.defs = cfg, defs

	if cfg.crypt != nil {
		plain := cfg.crypt(a.tag, data, r)
		if plain == nil {
			return
		}
		a.origData = a.data
		a.data = plain
		data = plain
	}

	bo := cfg.byteOrder
	if bo == ByteOrderInvalid {
		bo = r.state.bo
	}

	step := cfg.tagStep()

	// The first element can hold the byte size of the array itself,
	// read as cfg.elTiffType.
	if cfg.hasSize {
		es := int(typeSize(typeID(cfg.elTiffType)))
		if es > 0 && len(data) >= es {
			v := newValue(typeID(cfg.elTiffType), 1, data[:es], bo)
			if sz := int(v.uintAt(0)); sz > 0 && sz < len(data) {
				data = data[:sz]
			}
		}
	}

	// Filler arrays extend to cover all declared elements, even when
	// the payload ends early.
	if cfg.hasFillers && len(defs) > 0 {
		last := defs[len(defs)-1]
		if end := last.idx + last.size(uint16(last.idx/step), cfg.group); end > len(data) {
			padded := make([]byte, end)
			copy(padded, data)
			data = padded
		}
	}

	for idx := 0; idx < len(data); {
		def := cfg.elDefaultDef
		def.idx = idx
		if len(defs) > 0 {
			found := false
			for _, d := range defs {
				if d.idx == idx {
					def = d
					found = true
					break
				}
			}
			if !found && cfg.concat {
				end := len(data)
				for _, d := range defs {
					if d.idx > idx && d.idx < end {
						end = d.idx
					}
				}
				gap := end - idx
				es := arrayDef{0, cfg.elDefaultDef.tiffType, 1}.size(uint16(idx/step), cfg.group)
				if gap%es == 0 {
					def = arrayDef{idx, cfg.elDefaultDef.tiffType, uint32(gap / es)}
				} else {
					def = arrayDef{idx, ttUndefined, uint32(gap)}
				}
			}
		}

		sz := def.size(uint16(idx/step), cfg.group)
		if idx+sz > len(data) {
			sz = len(data) - idx
		}
		if sz <= 0 {
			break
		}

		el := a.addElement(idx, def, bo)
		el.tiffType = def.tiffType
		es := typeSize(resolveTypeID(def.tiffType, el.tag, el.group))
		if es == 0 {
			es = 1
		}
		el.count = uint32(sz) / es
		el.data = data[idx : idx+sz]
		el.dataStart = a.dataStart + idx
		el.value = newValue(resolveTypeID(def.tiffType, el.tag, el.group), el.count, el.data, bo)
		r.record(el)

		idx += sz
	}
}

// fixupDataAreas pairs offset entries with their size entries once the
// whole tree is known.
func (r *tiffReader) fixupDataAreas() {
	for _, de := range r.dataEntries {
		se := r.findEntry(de.szTag, de.szGroup)
		if se == nil || se.value == nil || de.value == nil {
			continue
		}
		off := int(de.value.uintAt(0))
		size := int(se.value.uintAt(0))
		start := r.orig.base + off
		if size <= 0 || start < 0 || start+size > len(r.buf) {
			r.warnf("directory %s, entry 0x%04x: data area out of bounds, ignored", groupName(de.group), de.tag)
			continue
		}
		de.dataArea = r.buf[start : start+size]
	}

	for _, ie := range r.imageEntries {
		se := r.findEntry(ie.szTag, ie.szGroup)
		if se == nil || se.value == nil || ie.value == nil {
			continue
		}
		n := int(ie.value.Count())
		if int(se.value.Count()) < n {
			n = int(se.value.Count())
		}
		for i := 0; i < n; i++ {
			off := ie.value.uintAt(i)
			size := se.value.uintAt(i)
			st := strip{offset: off, size: size}
			start := r.orig.base + int(off)
			if size > 0 && start >= 0 && start+int(size) <= len(r.buf) {
				st.data = r.buf[start : start+int(size)]
			}
			ie.strips = append(ie.strips, st)
		}
	}
}

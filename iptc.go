// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

const (
	iptcTagMarker        = 0x1c
	iptcCodedCharacterSet = 90

	characterSetUTF8 = "UTF-8"
)

// resolveCodedCharacterSet maps the escape sequence in dataset 1:90 to
// a character set name. Only the UTF-8 invocation is recognized.
func resolveCodedCharacterSet(b []byte) string {
	if string(b) == "\x1b%G" {
		return characterSetUTF8
	}
	return ""
}

// decodeIPTCBlocks scans the 0x1c-delimited IPTC datasets in data and
// fills out with "RecordName.DatasetName" keys. Values of repeatable
// datasets are joined with ", ".
func decodeIPTCBlocks(data []byte, out map[string]string, warnf func(string, ...any)) error {
	charset := ""
	iso := charmap.ISO8859_1.NewDecoder()

	i := 0
	for i+5 <= len(data) {
		if data[i] != iptcTagMarker {
			// Trailing padding is common; anything else means the
			// stream is out of sync.
			i++
			continue
		}
		record := data[i+1]
		dataset := data[i+2]
		size := int(ByteOrderBig.uint16(data, i+3))
		i += 5

		if size&0x8000 != 0 {
			// Extended dataset: the size field holds the length of
			// the actual size field.
			n := size & 0x7fff
			if n > 4 || i+n > len(data) {
				return newInvalidFormatError(fmt.Errorf("invalid extended IPTC dataset size length %d", n))
			}
			size = 0
			for j := 0; j < n; j++ {
				size = size<<8 | int(data[i+j])
			}
			i += n
		}

		if i+size > len(data) {
			warnf("IPTC dataset %d:%d truncated, stopping", record, dataset)
			break
		}
		value := data[i : i+size]
		i += size

		if record == 1 && dataset == iptcCodedCharacterSet {
			charset = resolveCodedCharacterSet(value)
			continue
		}

		var s string
		if charset == characterSetUTF8 {
			s = string(value)
		} else {
			decoded, err := iso.Bytes(value)
			if err != nil {
				s = string(value)
			} else {
				s = string(decoded)
			}
		}
		s = printableString(s)
		if s == "" {
			continue
		}

		key := iptcDatasetKey(record, dataset)
		if prev, ok := out[key]; ok {
			out[key] = prev + ", " + s
		} else {
			out[key] = s
		}
	}

	return nil
}

func iptcDatasetKey(record, dataset uint8) string {
	rn, ok := iptcRecordNames[record]
	if !ok {
		rn = fmt.Sprintf("Record%d", record)
	}
	dn := ""
	if m, ok := iptcDatasetNames[record]; ok {
		dn = m[dataset]
	}
	if dn == "" {
		dn = fmt.Sprintf("0x%04x", dataset)
	}
	return rn + "." + dn
}

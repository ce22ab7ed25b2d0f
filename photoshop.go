// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import "fmt"

const iptcNAAResourceID = 0x0404

// locateIptcIrb finds the IPTC/NAA record inside a Photoshop image
// resource block sequence. It returns nil when no IPTC resource is
// present.
func locateIptcIrb(data []byte) ([]byte, error) {
	i := 0
	for i+12 <= len(data) {
		if string(data[i:i+4]) != "8BIM" {
			return nil, newInvalidFormatError(fmt.Errorf("invalid image resource block signature at offset %d", i))
		}
		id := ByteOrderBig.uint16(data, i+4)
		i += 6

		// Pascal string name, padded to an even byte count.
		nameLen := int(data[i])
		namePadded := nameLen + 1
		if namePadded%2 != 0 {
			namePadded++
		}
		i += namePadded
		if i+4 > len(data) {
			return nil, newInvalidFormatError(fmt.Errorf("truncated image resource block"))
		}

		size := int(ByteOrderBig.uint32(data, i))
		i += 4
		if i+size > len(data) {
			return nil, newInvalidFormatError(fmt.Errorf("image resource block size %d exceeds buffer", size))
		}

		if id == iptcNAAResourceID {
			return data[i : i+size], nil
		}

		i += size
		if size%2 != 0 {
			i++
		}
	}
	return nil, nil
}

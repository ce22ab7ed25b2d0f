// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

var xmpSkipNamespaces = map[string]bool{
	"xmlns": true,
	"http://www.w3.org/1999/02/22-rdf-syntax-ns#": true,
}

type rdf struct {
	XMLName      xml.Name
	Descriptions []rdfDescription `xml:"Description"`
}

// Note: We currently only handle a subset of XMP tags,
// but a very common subset.
type rdfDescription struct {
	XMLName   xml.Name
	Attrs     []xml.Attr `xml:",any,attr"`
	Creator   seqList    `xml:"creator"`
	Publisher bagList    `xml:"publisher"`
	Subject   bagList    `xml:"subject"`
	Rights    altList    `xml:"rights"`
	Title     altList    `xml:"title"`
}

type altList struct {
	XMLName xml.Name
	Alt     struct {
		Items []string `xml:"li"`
	} `xml:"Alt"`
}

type seqList struct {
	XMLName xml.Name
	Seq     struct {
		Items []string `xml:"li"`
	} `xml:"Seq"`
}

type bagList struct {
	XMLName xml.Name
	Bag     struct {
		Items []string `xml:"li"`
	} `xml:"Bag"`
}

type xmpmeta struct {
	XMLName xml.Name
	RDF     rdf `xml:"RDF"`
}

// decodeXMPPacket parses the XMP packet and fills out with the
// attribute and list values of every rdf:Description.
func decodeXMPPacket(data []byte, out map[string]string) error {
	var meta xmpmeta
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&meta); err != nil {
		return newInvalidFormatError(fmt.Errorf("decoding XMP: %w", err))
	}

	for _, desc := range meta.RDF.Descriptions {
		for _, attr := range desc.Attrs {
			if xmpSkipNamespaces[attr.Name.Space] {
				continue
			}
			if attr.Value == "" {
				continue
			}
			out[firstUpper(attr.Name.Local)] = attr.Value
		}

		setXMPList(out, desc.Creator.XMLName, desc.Creator.Seq.Items)
		setXMPList(out, desc.Publisher.XMLName, desc.Publisher.Bag.Items)
		setXMPList(out, desc.Subject.XMLName, desc.Subject.Bag.Items)
		setXMPList(out, desc.Rights.XMLName, desc.Rights.Alt.Items)
		setXMPList(out, desc.Title.XMLName, desc.Title.Alt.Items)
	}

	return nil
}

func setXMPList(out map[string]string, name xml.Name, items []string) {
	if name.Local == "" || len(items) == 0 {
		return
	}
	out[firstUpper(name.Local)] = strings.Join(items, ", ")
}

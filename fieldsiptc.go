// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

// Source: https://exiftool.org/TagNames/IPTC.html
var iptcRecordNames = map[uint8]string{
	1: "Envelope",
	2: "Application2",
	3: "NewsPhoto",
	7: "PreObjectData",
	8: "ObjectData",
	9: "PostObjectData",
}

var iptcDatasetNames = map[uint8]map[uint8]string{
	1: {
		0:   "ModelVersion",
		5:   "Destination",
		20:  "FileFormat",
		22:  "FileVersion",
		30:  "ServiceId",
		40:  "EnvelopeNumber",
		50:  "ProductId",
		60:  "EnvelopePriority",
		70:  "DateSent",
		80:  "TimeSent",
		90:  "CharacterSet",
		100: "UNO",
	},
	2: {
		0:   "RecordVersion",
		3:   "ObjectType",
		4:   "ObjectAttribute",
		5:   "ObjectName",
		7:   "EditStatus",
		10:  "Urgency",
		15:  "Category",
		20:  "SuppCategory",
		22:  "FixtureId",
		25:  "Keywords",
		26:  "LocationCode",
		27:  "LocationName",
		30:  "ReleaseDate",
		35:  "ReleaseTime",
		40:  "SpecialInstructions",
		55:  "DateCreated",
		60:  "TimeCreated",
		62:  "DigitizationDate",
		63:  "DigitizationTime",
		65:  "Program",
		70:  "ProgramVersion",
		80:  "Byline",
		85:  "BylineTitle",
		90:  "City",
		92:  "SubLocation",
		95:  "ProvinceState",
		100: "CountryCode",
		101: "CountryName",
		103: "TransmissionReference",
		105: "Headline",
		110: "Credit",
		115: "Source",
		116: "Copyright",
		118: "Contact",
		120: "Caption",
		122: "Writer",
		135: "Language",
	},
}

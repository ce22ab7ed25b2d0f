// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

// Vendor makernote tag names. These cover the commonly seen tags; the
// rest are emitted with their hex number.

func init() {
	registerTagNames(canonTagNames, groupCanon)
	registerTagNames(canonCsTagNames, groupCanonCs)
	registerTagNames(canonSiTagNames, groupCanonSi)
	registerTagNames(nikonTagNames, groupNikon3)
	registerTagNames(nikon1TagNames, groupNikon1, groupNikon2)
	registerTagNames(nikonSiTagNames, groupNikonSi)
	registerTagNames(nikonCbTagNames, groupNikonCb)
	registerTagNames(nikonAftTagNames, groupNikonAFT)
	registerTagNames(olympusTagNames, groupOlympus, groupOlympus2)
	registerTagNames(fujiTagNames, groupFujifilm)
	registerTagNames(panasonicTagNames, groupPanasonic)
	registerTagNames(pentaxTagNames, groupPentax, groupPentaxDng)
	registerTagNames(sonyTagNames, groupSony1, groupSony2)
	registerTagNames(sonyCsTagNames, groupSonyCs)
	registerTagNames(sigmaTagNames, groupSigma)
	registerTagNames(casioTagNames, groupCasio, groupCasio2)
	registerTagNames(minoltaTagNames, groupMinolta)
	registerTagNames(samsungTagNames, groupSamsung)
}

var canonTagNames = map[uint16]string{
	0x0001: "CameraSettings",
	0x0004: "ShotInfo",
	0x0006: "ImageType",
	0x0007: "FirmwareVersion",
	0x0008: "FileNumber",
	0x0009: "OwnerName",
	0x000c: "SerialNumber",
	0x0010: "ModelID",
	0x0026: "AFInfo",
	0x0095: "LensModel",
	0x00a0: "ProcessingInfo",
}

var canonCsTagNames = map[uint16]string{
	0x0001: "Macro",
	0x0002: "Selftimer",
	0x0003: "Quality",
	0x0004: "FlashMode",
	0x0005: "DriveMode",
	0x0007: "FocusMode",
	0x000a: "ImageSize",
	0x000b: "EasyMode",
	0x000c: "DigitalZoom",
	0x000d: "Contrast",
	0x000e: "Saturation",
	0x000f: "Sharpness",
	0x0010: "ISOSpeed",
	0x0011: "MeteringMode",
	0x0012: "FocusType",
	0x0013: "AFPoint",
	0x0014: "ExposureProgram",
	0x0016: "LensType",
	0x0017: "Lens",
	0x001a: "MaxAperture",
	0x001b: "MinAperture",
	0x001c: "FlashActivity",
	0x0020: "FocusContinuous",
}

var canonSiTagNames = map[uint16]string{
	0x0002: "ISOSpeed",
	0x0004: "TargetAperture",
	0x0005: "TargetShutterSpeed",
	0x0007: "WhiteBalance",
	0x0009: "Sequence",
	0x000e: "AFPointUsed",
	0x000f: "FlashBias",
	0x0013: "SubjectDistance",
	0x0015: "ApertureValue",
	0x0016: "ShutterSpeedValue",
	0x0017: "MeasuredEV2",
}

var nikonTagNames = map[uint16]string{
	0x0001: "Version",
	0x0002: "ISOSpeed",
	0x0004: "Quality",
	0x0005: "WhiteBalance",
	0x0006: "Sharpening",
	0x0007: "Focus",
	0x0008: "FlashSetting",
	0x001d: "SerialNumber",
	0x0025: "ISOInfo",
	0x0083: "LensType",
	0x0084: "Lens",
	0x0088: "AFInfo",
	0x0091: "ShotInfo",
	0x0097: "ColorBalance",
	0x0098: "LensData",
	0x00a7: "ShutterCount",
	0x00b6: "AFTune",
}

var nikon1TagNames = map[uint16]string{
	0x0002: "Version",
	0x0003: "Quality",
	0x0004: "ColorMode",
	0x0005: "ImageAdjustment",
	0x0006: "CCDSensitivity",
	0x0007: "WhiteBalance",
	0x0008: "Focus",
}

var nikonSiTagNames = map[uint16]string{
	0x0000: "Version",
}

var nikonCbTagNames = map[uint16]string{
	0x0000: "Version",
}

var nikonAftTagNames = map[uint16]string{
	0x0000: "Version",
	0x0001: "AFFineTune",
	0x0002: "AFFineTuneIndex",
	0x0003: "AFFineTuneAdj",
}

var olympusTagNames = map[uint16]string{
	0x0200: "SpecialMode",
	0x0201: "Quality",
	0x0202: "Macro",
	0x0204: "DigitalZoom",
	0x0207: "CameraType",
	0x0209: "CameraID",
	0x1004: "FlashMode",
}

var fujiTagNames = map[uint16]string{
	0x0000: "Version",
	0x0010: "SerialNumber",
	0x1000: "Quality",
	0x1001: "Sharpness",
	0x1002: "WhiteBalance",
	0x1003: "Color",
	0x1010: "FlashMode",
	0x1021: "FocusMode",
}

var panasonicTagNames = map[uint16]string{
	0x0001: "Quality",
	0x0002: "FirmwareVersion",
	0x0003: "WhiteBalance",
	0x0007: "FocusMode",
	0x001a: "ImageStabilization",
	0x001c: "Macro",
	0x001f: "ShootingMode",
	0x0051: "LensType",
	0x0052: "LensSerialNumber",
}

var pentaxTagNames = map[uint16]string{
	0x0000: "Version",
	0x0001: "Mode",
	0x0005: "ModelID",
	0x0008: "Quality",
	0x000d: "Focus",
	0x0012: "ExposureTime",
	0x0013: "FNumber",
	0x0014: "ISO",
	0x0047: "Temperature",
}

var sonyTagNames = map[uint16]string{
	0x0102: "Quality",
	0x0104: "FlashExposureComp",
	0x0105: "Teleconverter",
	0x0112: "WhiteBalanceFineTune",
	0x0114: "CameraSettings",
	0x0115: "WhiteBalance",
	0x2001: "PreviewImage",
	0xb000: "FileFormat",
	0xb001: "SonyModelID",
	0xb020: "ColorReproduction",
	0xb040: "Macro",
	0xb047: "Quality2",
}

var sonyCsTagNames = map[uint16]string{
	0x0004: "DriveMode",
	0x0006: "WhiteBalanceFineTune",
	0x0010: "FocusMode",
	0x0011: "AFAreaMode",
	0x0015: "MeteringMode",
	0x0016: "ISOSetting",
	0x0018: "DynamicRangeOptimizerMode",
	0x001a: "CreativeStyle",
	0x001c: "Sharpness",
	0x001d: "Contrast",
	0x001e: "Saturation",
	0x0023: "FlashMode",
	0x003c: "ExposureProgram",
	0x003d: "ImageStabilization",
	0x003f: "Rotation",
}

var sigmaTagNames = map[uint16]string{
	0x0002: "SerialNumber",
	0x0003: "DriveMode",
	0x0004: "ResolutionMode",
	0x0005: "AutofocusMode",
	0x0008: "ExposureMode",
	0x0009: "MeteringMode",
	0x000a: "LensRange",
	0x000b: "ColorSpace",
}

var casioTagNames = map[uint16]string{
	0x0001: "RecordingMode",
	0x0002: "Quality",
	0x0003: "FocusMode",
	0x0004: "FlashMode",
	0x0005: "FlashIntensity",
	0x0006: "ObjectDistance",
	0x0007: "WhiteBalance",
	0x0014: "CCDSensitivity",
}

var minoltaTagNames = map[uint16]string{
	0x0000: "Version",
	0x0001: "CameraSettingsStdOld",
	0x0003: "CameraSettingsStdNew",
	0x0040: "CompressedImageSize",
	0x0088: "ThumbnailOffset",
	0x0089: "ThumbnailLength",
}

var samsungTagNames = map[uint16]string{
	0x0001: "Version",
	0x0021: "PictureWizard",
	0x0035: "PreviewIFD",
	0x0043: "SerialNumber",
	0x00a3: "LensType",
}

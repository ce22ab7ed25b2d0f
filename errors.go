// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"errors"
	"fmt"
)

var (
	// errArithmeticOverflow signals a count/size multiplication or an
	// offset addition that cannot fit the buffer's address space. The
	// current decode call is aborted; there is no safe way to continue.
	errArithmeticOverflow = fmt.Errorf("tiffmeta: arithmetic overflow")

	// errCorruptedMetadata signals an impossible buffer position. The
	// byte order accessors panic with it; Decode recovers.
	errCorruptedMetadata = fmt.Errorf("tiffmeta: corrupted metadata")
)

// InvalidFormatError is returned for malformed input that prevents any
// decoding at all (e.g. a buffer too small to hold a TIFF header).
type InvalidFormatError struct {
	Err error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format: %s", e.Err)
}

// Is reports whether target is of the same kind.
func (e *InvalidFormatError) Is(target error) bool {
	switch target.(type) {
	case *InvalidFormatError:
		return true
	default:
		return errors.Is(e.Err, target)
	}
}

func newInvalidFormatError(err error) error {
	return &InvalidFormatError{Err: err}
}

func newInvalidFormatErrorf(format string, args ...any) error {
	return &InvalidFormatError{Err: fmt.Errorf(format, args...)}
}

func isInvalidFormatErrorCandidate(err error) bool {
	return errors.Is(err, errCorruptedMetadata) || errors.Is(err, errArithmeticOverflow)
}

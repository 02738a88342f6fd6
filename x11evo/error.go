// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x11evo

import (
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific HashError.
const (
	// ErrAccelerationUnavailable indicates the accelerated hasher could
	// not be bound.  It is only ever logged, the portable hasher is used
	// instead.
	ErrAccelerationUnavailable ErrorCode = iota

	// ErrPrimitiveFailure indicates one of the chained primitives faulted
	// or produced a digest of the wrong size.
	ErrPrimitiveFailure

	// ErrUnexpectedFault indicates any other fault during the computation.
	ErrUnexpectedFault

	// ErrInvalidSchedule indicates a schedule that is not a permutation of
	// all the primitives was handed to the chain executor.
	ErrInvalidSchedule

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrAccelerationUnavailable: "ErrAccelerationUnavailable",
	ErrPrimitiveFailure:        "ErrPrimitiveFailure",
	ErrUnexpectedFault:         "ErrUnexpectedFault",
	ErrInvalidSchedule:         "ErrInvalidSchedule",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// HashError identifies a failure to compute an X11Evo digest.  A HashError
// is never returned together with a usable digest, so the caller must treat
// the input as unscoreable.
//
// The caller can use type assertions or errors.As to determine the
// specific error code.
type HashError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error, if any
}

// Error satisfies the error interface and prints human-readable errors.
func (e HashError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Description, e.Err)
	}
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e HashError) Unwrap() error {
	return e.Err
}

// hashError creates a HashError given a set of arguments.
func hashError(c ErrorCode, desc string, err error) HashError {
	return HashError{ErrorCode: c, Description: desc, Err: err}
}

// panicError converts a recovered panic value into an error.
func panicError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

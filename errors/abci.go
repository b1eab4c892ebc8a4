package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessABCICode is the code of a call that returned no error.
	SuccessABCICode = 0

	// Errors that were not registered share this code and, outside of
	// debug mode, a generic log.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log describing err in a call response.
//
// Only registered errors keep their message when debug is false. Any other
// error, and any recovered panic, is reported as a generic internal error so
// that implementation details never leave the host.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return internalABCICode, internalABCILog
	case ErrPanic.Is(err):
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// ABCIError is the reverse of ABCIInfo. A registered code maps back to its
// error, so ErrNotFound.Is(err) holds for a response that was produced from
// ErrNotFound.
func ABCIError(code uint32, log string) error {
	if e, ok := usedCodes[code]; ok {
		return Wrap(e, log)
	}
	return Wrap(usedCodes[internalABCICode], log)
}

type coder interface {
	ABCICode() uint32
}

// abciCode unwraps err until it finds a registered error.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			return internalABCICode
		}
		err = c.Cause()
	}
}

// Redact replaces panics and unregistered errors with a generic internal
// error. It returns err untouched in debug mode.
func Redact(err error, debug bool) error {
	if debug || errIsNil(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}

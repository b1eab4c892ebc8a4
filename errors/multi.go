package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored. If
// there is only one error it is returned as is.
//
// Returned error reports the ABCI code of the first error, consistent with
// a fail-fast approach, while Is is testing all of the collected errors.
func Append(errs ...error) error {
	var me multiErr
	for _, e := range errs {
		if errIsNil(e) {
			continue
		}
		if m, ok := e.(*multiErr); ok {
			me.errors = append(me.errors, m.errors...)
			continue
		}
		me.errors = append(me.errors, e)
	}
	switch len(me.errors) {
	case 0:
		return nil
	case 1:
		return me.errors[0]
	default:
		return &me
	}
}

type multiErr struct {
	errors []error
}

var _ coder = (*multiErr)(nil)
var _ causer = (*multiErr)(nil)

func (me *multiErr) Error() string {
	points := make([]string, len(me.errors))
	for i, err := range me.errors {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n",
		len(me.errors), strings.Join(points, "\n\t"))
}

// ABCICode returns the error code of the first error.
func (me *multiErr) ABCICode() uint32 {
	return abciCode(me.errors[0])
}

// Cause returns the first error.
func (me *multiErr) Cause() error {
	return me.errors[0]
}

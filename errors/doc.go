/*
Package errors implements custom error interfaces for covenant.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when absolutely necessary. An extension that needs
its own root error (see x/multisig) registers it with Register(code,
description) during the program startup.

Code stands for an ABCI error code, which allows to distinguish types of errors
on the client side and act accordingly.

Please ensure you create a runtime error using ErrXyz.New("...") or
errors.Wrap(err, "...") at the point of creation to ensure a stacktrace is
attached. If you wrap multiple times, only the first wrap records the
stacktrace.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
for the error
	%s is just the error message
	%+v is the full stack trace
*/
package errors

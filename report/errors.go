package report

import (
	"fmt"
	"os"
)

// LocalError is a compilation error raised in a context in which the file and
// reporter are known by an enclosing error handler and thus don't need to be
// passed along with the error.
type LocalError struct {
	// The error message.
	Message string

	// The message kind: one of the enumerated message kinds.
	Kind int

	// The span over which the error occurs.
	Span *TextSpan
}

func (le *LocalError) Error() string {
	return le.Message
}

// Raise creates a new local compile error.
func Raise(span *TextSpan, kind int, msg string, args ...interface{}) *LocalError {
	return &LocalError{Message: fmt.Sprintf(msg, args...), Kind: kind, Span: span}
}

// CatchErrors catches any errors thrown by a `panic` during a stage of
// compilation.  In effect, this handler determines when any errors
// "unrecoverable" within a given subsection of the compiler should stop
// bubbling.
// NB: This function must ALWAYS be deferred.
func (r *Reporter) CatchErrors(ctx *Context) {
	if x := recover(); x != nil {
		if lerr, ok := x.(*LocalError); ok {
			r.ReportError(ctx, lerr.Span, lerr.Kind, lerr.Message)
		} else if serr, ok := x.(error); ok {
			r.ReportError(ctx, nil, KindSyntax, serr.Error())
		} else {
			// A panic that isn't an error at all is a compiler bug surfacing.
			ReportICE("%v", x)
		}
	}
}

// -----------------------------------------------------------------------------

// ReportICE reports an internal compiler error.  These are errors that
// specifically result from a bug or unexpected condition occurring within the
// compiler: they are not intended to ever happen.  These errors are always
// displayed regardless of log level.
func ReportICE(msg string, args ...interface{}) {
	displayICE(fmt.Sprintf(msg, args...))

	os.Exit(-1)
}

// ReportFatal reports a fatal error.  These are errors that should cause all
// compilation to stop immediately.  However, they are expected errors that
// generally result from invalid configuration of some form: a missing target
// profile, an unwritable output path, etc.
func ReportFatal(msg string, args ...interface{}) {
	displayFatal(fmt.Sprintf(msg, args...))

	os.Exit(1)
}

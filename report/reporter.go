package report

import (
	"fmt"
	"sync"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user while compiling one unit.  The reporter respects the
// set log level and is synchronized: its methods can be safely called from
// multiple goroutines.  Each compile unit owns its own reporter: no reporting
// state is shared between units.
type Reporter struct {
	// The mutex used to synchonize different report method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The errors collected so far.  Errors are displayed as they occur; they
	// are retained so callers can inspect what went wrong.
	errors []*Message

	// The warnings collected so far.  Warnings are accumulated and replayed
	// once compilation of the unit concludes.
	warnings []*Message
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// Enumeration of the different kinds of compilation messages.  The kind
// selects the banner label a message is displayed under.
const (
	KindSyntax = iota
	KindRegister
	KindWidth
	KindSection
	KindSyscall
	KindConvention
	KindName
	KindLabel
	KindArity
	KindData
	KindReturn
)

// kindStrings maps message kinds to their display names.
var kindStrings = map[int]string{
	KindSyntax:     "Syntax",
	KindRegister:   "Register",
	KindWidth:      "Width",
	KindSection:    "Section",
	KindSyscall:    "Syscall",
	KindConvention: "Convention",
	KindName:       "Name",
	KindLabel:      "Label",
	KindArity:      "Arity",
	KindData:       "Data",
	KindReturn:     "Return",
}

// Context is the compilation context a message occurs in: the source file
// being compiled.  The absolute path is used to excerpt source text; the
// representative path is the shortened path shown to the user.
type Context struct {
	AbsPath  string
	ReprPath string
}

// Message represents a single compilation error or warning.
type Message struct {
	// The context of the file the message occurred in.
	Context *Context

	// The span over which the message occurs.  This may be nil in which case
	// no position information is displayed.
	Span *TextSpan

	// The message kind: one of the enumerated message kinds.
	Kind int

	// The message text.
	Message string

	// Whether the message is an error or a warning.
	IsError bool
}

// NewReporter creates a new reporter with the given log level.
func NewReporter(logLevel int) *Reporter {
	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
	}
}

// -----------------------------------------------------------------------------

// ReportError reports a compilation error: ie. erroneous input code.
func (r *Reporter) ReportError(ctx *Context, span *TextSpan, kind int, msg string, args ...interface{}) {
	r.m.Lock()
	defer r.m.Unlock()

	m := &Message{Context: ctx, Span: span, Kind: kind, Message: fmt.Sprintf(msg, args...), IsError: true}
	r.errors = append(r.errors, m)

	if r.logLevel > LogLevelSilent {
		m.display()
	}
}

// ReportWarning reports a compilation warning.  Warnings never abort
// compilation: they are accumulated and replayed after the unit finishes.
func (r *Reporter) ReportWarning(ctx *Context, span *TextSpan, kind int, msg string, args ...interface{}) {
	r.m.Lock()
	defer r.m.Unlock()

	r.warnings = append(r.warnings, &Message{
		Context: ctx,
		Span:    span,
		Kind:    kind,
		Message: fmt.Sprintf(msg, args...),
		IsError: false,
	})
}

// ShouldProceed indicates whether or not the unit has encountered any errors
// that should cause compilation to stop at the current phase.
func (r *Reporter) ShouldProceed() bool {
	r.m.Lock()
	defer r.m.Unlock()

	return len(r.errors) == 0
}

// Errors returns the errors collected so far.
func (r *Reporter) Errors() []*Message {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errors
}

// Warnings returns the warnings collected so far.
func (r *Reporter) Warnings() []*Message {
	r.m.Lock()
	defer r.m.Unlock()

	return r.warnings
}

// Conclude replays all accumulated warnings and displays the concluding
// message for the unit.
func (r *Reporter) Conclude(outputPath string) {
	r.m.Lock()
	defer r.m.Unlock()

	if r.logLevel >= LogLevelWarn {
		for _, w := range r.warnings {
			w.display()
		}
	}

	if r.logLevel == LogLevelVerbose {
		displayFinished(len(r.errors) == 0, outputPath)
	}
}

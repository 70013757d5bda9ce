package report

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestNewSpanOver(t *testing.T) {
	start := &TextSpan{StartLine: 0, StartCol: 2, EndLine: 0, EndCol: 5}
	end := &TextSpan{StartLine: 2, StartCol: 0, EndLine: 2, EndCol: 8}

	span := NewSpanOver(start, end)
	be.Equal(t, span.StartLine, 0)
	be.Equal(t, span.StartCol, 2)
	be.Equal(t, span.EndLine, 2)
	be.Equal(t, span.EndCol, 8)
}

func TestReporterCollectsErrors(t *testing.T) {
	r := NewReporter(LogLevelSilent)
	ctx := &Context{AbsPath: "test.ore", ReprPath: "test.ore"}

	be.True(t, r.ShouldProceed())

	r.ReportError(ctx, nil, KindName, "undefined symbol: `%s`", "x")
	be.True(t, !r.ShouldProceed())
	be.Equal(t, len(r.Errors()), 1)
	be.Equal(t, r.Errors()[0].Message, "undefined symbol: `x`")
	be.Equal(t, r.Errors()[0].Kind, KindName)
	be.True(t, r.Errors()[0].IsError)
}

func TestWarningsDoNotStopCompilation(t *testing.T) {
	r := NewReporter(LogLevelSilent)
	ctx := &Context{AbsPath: "test.ore", ReprPath: "test.ore"}

	r.ReportWarning(ctx, nil, KindReturn, "cannot prove every path through `%s` returns a value", "f")
	be.True(t, r.ShouldProceed())
	be.Equal(t, len(r.Warnings()), 1)
	be.True(t, !r.Warnings()[0].IsError)
}

func TestCatchErrorsReportsLocalError(t *testing.T) {
	r := NewReporter(LogLevelSilent)
	ctx := &Context{AbsPath: "test.ore", ReprPath: "test.ore"}

	func() {
		defer r.CatchErrors(ctx)
		panic(Raise(&TextSpan{}, KindWidth, "unknown width: %d bytes", 3))
	}()

	be.Equal(t, len(r.Errors()), 1)
	be.Equal(t, r.Errors()[0].Kind, KindWidth)
	be.Equal(t, r.Errors()[0].Message, "unknown width: 3 bytes")
}

func TestLocalErrorIsError(t *testing.T) {
	var err error = Raise(nil, KindSyntax, "unexpected token: `%s`", "{")
	be.Equal(t, err.Error(), "unexpected token: `{`")
}

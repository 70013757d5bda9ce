package generate

import (
	"fmt"
	"strings"

	"orec/arch"
	"orec/ast"
	"orec/common"
	"orec/report"
	"orec/types"
	"orec/unit"
)

// Generator is responsible for walking a resolved program and emitting the
// target's assembly text.  It consults the architecture description for
// register names and sections and the syscall table for codes and the calling
// convention; it performs no name resolution of its own.
type Generator struct {
	// The Ore source file being generated.
	file *unit.SourceFile

	// The target architecture description.
	desc *arch.Description

	// The target syscall table.
	table *arch.SyscallTable

	// The buffer the instruction text of the init section accumulates in.
	code *strings.Builder

	// The interned string literals in emission order.
	strPool []string

	// The label suffix applied inside the current inline expansion so a body
	// expanded at several sites never emits the same label twice.
	suffix string

	// The end labels of the inline expansions currently being emitted.
	// `return` inside an expansion jumps to the innermost one.
	inlineEnds []string

	// The declared return width of the label whose body is being emitted.
	curRet types.Width

	// Counters for inline expansions and print-intrinsic sites.
	inlineCount int
	putsCount   int
}

// Generate emits assembly text for the given resolved source file.  It
// returns the full output text and whether generation succeeded.
func Generate(file *unit.SourceFile, desc *arch.Description, table *arch.SyscallTable) (string, bool) {
	g := &Generator{
		file:  file,
		desc:  desc,
		table: table,
		code:  &strings.Builder{},
	}

	g.checkReturnPaths()

	entry := g.genLabels()
	if !file.Rep.ShouldProceed() {
		return "", false
	}

	out := &strings.Builder{}
	if entry != nil {
		fmt.Fprintf(out, "global %s\n\n", entry.Name)
	}

	initSection, ok := g.section(common.AttrInit, nil)
	if !ok {
		return "", false
	}

	fmt.Fprintf(out, "section %s\n", initSection)
	out.WriteString(g.code.String())

	if !g.genData(out) {
		return "", false
	}

	return out.String(), file.Rep.ShouldProceed()
}

// -----------------------------------------------------------------------------

// checkReturnPaths raises the advisory diagnostic for every label that
// declares a return width but whose body cannot be statically shown to end in
// a return.  The label is still emitted as written: it is trusted to always
// be invoked through a path that does return.
func (g *Generator) checkReturnPaths() {
	for _, def := range g.file.Prog.Labels {
		if def.RetWidth == 0 {
			continue
		}

		if len(def.Body.Stmts) > 0 {
			if _, ok := def.Body.Stmts[len(def.Body.Stmts)-1].(*ast.ReturnStmt); ok {
				continue
			}
		}

		g.file.Rep.ReportWarning(g.file.Context, def.NameSpan, report.KindReturn,
			"cannot prove every path through `%s` returns a value", def.Name)
	}
}

// -----------------------------------------------------------------------------

// section returns the output section mapped for an attribute, reporting an
// error if none is mapped.
func (g *Generator) section(attr string, span *report.TextSpan) (string, bool) {
	s, ok := g.desc.Section(attr)
	if !ok {
		g.recError(span, report.KindSection, "no section mapped for attribute `%s`", attr)
		return "", false
	}

	return s, true
}

// instr emits one instruction line into the init section.
func (g *Generator) instr(format string, args ...interface{}) {
	g.code.WriteString("  ")
	fmt.Fprintf(g.code, format, args...)
	g.code.WriteByte('\n')
}

// label emits a label line into the init section.  The current inline suffix
// is applied to block-local labels (those beginning with `.L`).
func (g *Generator) label(name string) {
	fmt.Fprintf(g.code, "%s:\n", g.localLabel(name))
}

// localLabel applies the current inline suffix to a block-local label.
func (g *Generator) localLabel(name string) string {
	if g.suffix != "" && strings.HasPrefix(name, ".L") {
		return name + g.suffix
	}

	return name
}

// recError reports a generation error.
func (g *Generator) recError(span *report.TextSpan, kind int, msg string, args ...interface{}) {
	g.file.Rep.ReportError(g.file.Context, span, kind, msg, args...)
}

// regAt resolves a convention register's alias at the given width.  A
// register paired with a memory operand must match it in size, so sub-word
// operands need the narrower physical name the alias declares for that width.
func (g *Generator) regAt(reg *arch.Register, w types.Width, span *report.TextSpan) string {
	if r, ok := g.desc.Register(reg.Alias, w); ok {
		return r.Phys
	}

	g.recError(span, report.KindRegister,
		"no register declared for alias `%s` at width %d", reg.Alias, int(w))
	return reg.Phys
}

// accAt returns the physical name of the accumulator at the given width: the
// convention's return register, which also receives every expression result.
func (g *Generator) accAt(w types.Width, span *report.TextSpan) string {
	return g.regAt(g.table.Conv().RetReg, w, span)
}

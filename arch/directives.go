package arch

import (
	"orec/ast"
	"orec/report"
	"orec/types"
	"orec/unit"
	"orec/util"
)

// Names of the machine-description directives.
const (
	DirWord        = "WORD"
	DirAttr        = "ATTR"
	DirReg         = "REG"
	DirSyscallAddr = "SYSCALL_ADDR"
	DirSyscallConv = "SYSCALL_CONV"
)

// FromDirectives builds the architecture description from a program's
// directives.  Errors are reported through the file's reporter; the boolean
// indicates success.
func FromDirectives(file *unit.SourceFile) (*Description, bool) {
	b := NewDescriptionBuilder()
	ok := true

	fail := func(span *report.TextSpan, kind int, msg string, args ...interface{}) {
		file.Rep.ReportError(file.Context, span, kind, msg, args...)
		ok = false
	}

	for _, dir := range file.Prog.Directives {
		switch dir.Name {
		case DirWord:
			if len(dir.Args) != 1 || !dir.Args[0].IsNum {
				fail(dir.Span(), report.KindSyntax, "`:%s` takes a single numeric argument", DirWord)
				continue
			}

			if err := b.SetWordBits(int(dir.Args[0].Num)); err != nil {
				fail(dir.Args[0].Span, report.KindWidth, err.Error())
			}
		case DirAttr:
			if len(dir.Args) != 2 {
				fail(dir.Span(), report.KindSyntax, "`:%s` takes an attribute name and a section name", DirAttr)
				continue
			}

			if err := b.MapSection(dir.Args[0].Value, dir.Args[1].Value); err != nil {
				fail(dir.Args[1].Span, report.KindSection, err.Error())
			}
		case DirReg:
			if len(dir.Args) != 3 || !dir.Args[2].IsNum {
				fail(dir.Span(), report.KindSyntax, "`:%s` takes an alias, a physical register, and a byte width", DirReg)
				continue
			}

			w := types.Width(dir.Args[2].Num)
			if !util.Contains(types.SlotWidths, w) {
				fail(dir.Args[2].Span, report.KindWidth, "unknown register width: %d bytes", dir.Args[2].Num)
				continue
			}

			if err := b.AddRegister(dir.Args[0].Value, dir.Args[1].Value, int(dir.Args[2].Num)); err != nil {
				fail(dir.Args[0].Span, report.KindRegister, err.Error())
			}
		case DirSyscallAddr, DirSyscallConv:
			// handled when the syscall table is built
		default:
			fail(dir.Span(), report.KindSyntax, "unknown directive `:%s`", dir.Name)
		}
	}

	if !ok {
		return nil, false
	}

	desc, err := b.Build()
	if err != nil {
		file.Rep.ReportError(file.Context, nil, report.KindWidth, err.Error())
		return nil, false
	}

	return desc, true
}

// TableFromProgram builds the syscall table from a program's syscall
// directives and declaration blocks.  Errors are reported through the file's
// reporter; the boolean indicates success.
func TableFromProgram(file *unit.SourceFile, desc *Description) (*SyscallTable, bool) {
	b := NewTableBuilder(desc)
	ok := true

	fail := func(span *report.TextSpan, kind int, msg string, args ...interface{}) {
		file.Rep.ReportError(file.Context, span, kind, msg, args...)
		ok = false
	}

	for _, dir := range file.Prog.Directives {
		switch dir.Name {
		case DirSyscallAddr:
			if len(dir.Args) != 1 {
				fail(dir.Span(), report.KindSyntax, "`:%s` takes a single mnemonic or interrupt number", DirSyscallAddr)
				continue
			}

			var err error
			if dir.Args[0].IsNum {
				err = b.SetEntryInt(dir.Args[0].Num)
			} else {
				err = b.SetEntryMnemonic(dir.Args[0].Value)
			}

			if err != nil {
				fail(dir.Span(), report.KindConvention, err.Error())
			}
		case DirSyscallConv:
			if len(dir.Args) < 1 || dir.ConvRet == nil {
				fail(dir.Span(), report.KindSyntax,
					"`:%s` takes a number register, argument registers, and `-> ret`", DirSyscallConv)
				continue
			}

			argAliases := util.Map(dir.Args[1:], func(a *ast.DirectiveArg) string { return a.Value })
			if err := b.SetConvention(dir.Args[0].Value, argAliases, dir.ConvRet.Value); err != nil {
				fail(dir.Span(), report.KindConvention, err.Error())
			}
		}
	}

	for _, decl := range file.Prog.Syscalls {
		params := make([]ParamSpec, len(decl.Params))
		bad := false
		for i, p := range decl.Params {
			w := p.Width
			switch p.Kind {
			case types.ParamPointer, types.ParamWord:
				w = desc.WordWidth()
			default:
				if !desc.SupportsWidth(w) {
					fail(p.Span, report.KindWidth,
						"syscall parameter `%s` has unsupported width %d", p.Label, int(w))
					bad = true
				}
			}

			params[i] = ParamSpec{Label: p.Label, Kind: p.Kind, Width: w}
		}

		if bad {
			continue
		}

		if err := b.AddSyscall(decl.Name, decl.Code, params); err != nil {
			fail(decl.NameSpan, report.KindSyscall, err.Error())
		}
	}

	if !ok {
		return nil, false
	}

	table, err := b.Seal()
	if err != nil {
		file.Rep.ReportError(file.Context, nil, report.KindConvention, err.Error())
		return nil, false
	}

	return table, true
}

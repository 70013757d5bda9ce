package generate

import (
	"bufio"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"orec/arch"
	"orec/report"
	"orec/resolve"
	"orec/syntax"
	"orec/unit"
)

const testPrelude = `
:WORD 64
:ATTR init .text
:ATTR static .data
:ATTR const .rodata
:REG acc rax 8
:REG acc eax 4
:REG num rax 8
:REG a0 rdi 8
:REG a0 edi 4
:REG a1 rsi 8
:REG a1 esi 4
:REG a2 rdx 8
:REG a2 edx 4
:SYSCALL_ADDR syscall
:SYSCALL_CONV num a0 a1 a2 -> acc

`

// genSource compiles src with the standard test prelude prepended and returns
// the emitted assembly.
func genSource(t *testing.T, src string) (string, *unit.SourceFile) {
	t.Helper()

	out, file, ok := tryGenSource(t, src)
	be.True(t, ok)
	return out, file
}

// tryGenSource compiles src through the full pipeline without requiring
// success.
func tryGenSource(t *testing.T, src string) (string, *unit.SourceFile, bool) {
	t.Helper()

	file := unit.NewSourceFile("test.ore", "test.ore", report.NewReporter(report.LogLevelSilent))
	p := syntax.NewParser(file, bufio.NewReader(strings.NewReader(testPrelude+src)))
	be.True(t, p.Parse())

	desc, ok := arch.FromDirectives(file)
	be.True(t, ok)
	table, ok := arch.TableFromProgram(file, desc)
	be.True(t, ok)

	if !resolve.ResolveProgram(file, desc) {
		return "", file, false
	}

	out, ok := Generate(file, desc, table)
	return out, file, ok
}

// asmIndex returns the offset of the first emitted line matching s, or -1.
func asmIndex(out, s string) int {
	offset := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == s {
			return offset
		}

		offset += len(line) + 1
	}

	return -1
}

// inOrder asserts that each instruction appears in the output after the one
// before it.
func inOrder(t *testing.T, out string, instrs ...string) {
	t.Helper()

	prev := -1
	for _, instr := range instrs {
		idx := asmIndex(out, instr)
		if idx < 0 {
			t.Fatalf("instruction %q not found in output:\n%s", instr, out)
		}

		if idx <= prev {
			t.Fatalf("instruction %q out of order in output:\n%s", instr, out)
		}

		prev = idx
	}
}

func TestEntryFraming(t *testing.T) {
	out, _ := genSource(t, `
entry main() {
  return
}
`)

	be.True(t, strings.HasPrefix(out, "global main\n"))
	inOrder(t, out, "section .text", "main:", "ret")
}

func TestTrailingReturnSupplied(t *testing.T) {
	out, _ := genSource(t, `
entry main() {
  %x 8 = 0
  'x ++
}
`)

	inOrder(t, out, "main:", "inc qword [v0_x]", "ret")
}

func TestPinnedBindingUsesPhysicalRegister(t *testing.T) {
	out, _ := genSource(t, `
entry main() {
  %v @a1
  'v = 5
}
`)

	inOrder(t, out, "mov rsi, 5")
}

func TestLoopLowering(t *testing.T) {
	out, _ := genSource(t, `
entry main() {
  %i 8 = 0
  loop (i < 3) {
    'i ++
  }
}
`)

	inOrder(t, out,
		"cmp qword [v0_i], 3",
		"jae .L0_end",
		"inc qword [v0_i]",
		"jb .L0",
	)

	be.True(t, asmIndex(out, ".L0:") >= 0)
	be.True(t, asmIndex(out, ".L0:") < asmIndex(out, ".L0_end:"))
}

func TestConditionalBranchesAround(t *testing.T) {
	out, _ := genSource(t, `
entry main() {
  %x 8 = 0
  (x != 0) => 'x --
}
`)

	inOrder(t, out, "cmp qword [v0_x], 0", "je .L0_end", "dec qword [v0_x]")

	// Non-loop blocks never branch back.
	be.Equal(t, asmIndex(out, "jne .L0"), -1)
}

func TestMemoryCompareStagesThroughAccumulator(t *testing.T) {
	out, _ := genSource(t, `
entry main() {
  %a 8 = 1
  %b 8 = 2
  (a < b) { }
}
`)

	inOrder(t, out, "mov rax, qword [v0_a]", "cmp rax, qword [v1_b]")
}

func TestRoutineCall(t *testing.T) {
	out, _ := genSource(t, `
add(a: 8, b: 8) -> 8 {
  return a + b
}

entry main() {
  %r 8
  'r = $add(1, 2)
}
`)

	// The routine binds each parameter slot from its argument register.
	inOrder(t, out,
		"add:",
		"mov qword [v0_a], rdi",
		"mov qword [v1_b], rsi",
		"mov rax, qword [v0_a]",
		"add rax, qword [v1_b]",
		"ret",
	)

	// The call site loads the registers, calls, and stores the result.
	inOrder(t, out,
		"main:",
		"mov rdi, 1",
		"mov rsi, 2",
		"call add",
		"mov qword [v2_r], rax",
	)
}

func TestSubWordRoutineUsesNarrowRegisters(t *testing.T) {
	out, _ := genSource(t, `
add(a: 4, b: 4) -> 4 {
  return a + b
}

entry main() {
  %r 4
  'r = $add(1, 2)
}
`)

	// Every move pairing a 4 byte slot with a register picks the register
	// declared at that width, so both operands agree in size.
	inOrder(t, out,
		"add:",
		"mov dword [v0_a], edi",
		"mov dword [v1_b], esi",
		"mov eax, dword [v0_a]",
		"add eax, dword [v1_b]",
		"ret",
	)

	inOrder(t, out,
		"main:",
		"mov rdi, 1",
		"mov rsi, 2",
		"call add",
		"mov dword [v2_r], eax",
	)
}

func TestSubWordSyscallArgument(t *testing.T) {
	out, _ := genSource(t, `
write { = 1; fd 4; buf ptr; count word }

static {
  MSG 1: "hi"
}

entry main() {
  %fd 4 = 1
  *write fd, MSG, 2
}
`)

	inOrder(t, out,
		"mov edi, dword [v0_fd]",
		"mov rsi, MSG",
		"mov rdx, 2",
		"mov rax, 1",
		"syscall",
	)
}

func TestSubWordCompareStaging(t *testing.T) {
	out, _ := genSource(t, `
entry main() {
  %a 4 = 1
  %b 4 = 2
  (a < b) { }
}
`)

	inOrder(t, out, "mov eax, dword [v0_a]", "cmp eax, dword [v1_b]")
}

func TestMissingNarrowRegisterReported(t *testing.T) {
	out, file, ok := tryGenSource(t, `
entry main() {
  %x 2 = 1
  'x = x + 1
}
`)

	be.True(t, !ok)
	be.Equal(t, out, "")

	found := false
	for _, e := range file.Rep.Errors() {
		if e.Kind == report.KindRegister {
			found = true
		}
	}
	be.True(t, found)
}

func TestStoreWidthMismatchRejected(t *testing.T) {
	_, file, ok := tryGenSource(t, `
entry main() {
  %x 8 = 1
  %y 4 = 0
  'y = x
}
`)

	be.True(t, !ok)

	found := false
	for _, e := range file.Rep.Errors() {
		if e.Kind == report.KindWidth {
			found = true
		}
	}
	be.True(t, found)
}

func TestInlineExpansion(t *testing.T) {
	out, _ := genSource(t, `
inline twice(v: 8) -> 8 {
  return v + v
}

entry main() {
  %r 8
  'r = $twice(3)
  'r = $twice(4)
}
`)

	// Each site expands the body with its own end label; nothing is called.
	be.Equal(t, asmIndex(out, "call twice"), -1)
	be.Equal(t, asmIndex(out, "twice:"), -1)
	be.True(t, asmIndex(out, ".Lie0:") >= 0)
	be.True(t, asmIndex(out, ".Lie1:") >= 0)

	inOrder(t, out, "mov qword [v0_v], 3", "jmp .Lie0", "mov qword [v0_v], 4", "jmp .Lie1")
}

func TestInlineBlockLabelsSuffixed(t *testing.T) {
	out, _ := genSource(t, `
inline spin(n: 8) {
  loop (n != 0) {
    'n --
  }
}

entry main() {
  $spin 2
  $spin 3
}
`)

	be.True(t, asmIndex(out, ".L0_i0:") >= 0)
	be.True(t, asmIndex(out, ".L0_i1:") >= 0)
	inOrder(t, out, "je .L0_end_i0", "je .L0_end_i1")
}

func TestNamedJump(t *testing.T) {
	out, _ := genSource(t, `
entry main() {
  %i 8 = 0
  outer (i < 3) {
    'i ++
    jmp outer
  }
}
`)

	inOrder(t, out, ".L_outer_0:", "jmp .L_outer_0", ".L_outer_0_end:")
}

func TestNestedBlocksWithSameNameEmitDistinctLabels(t *testing.T) {
	out, _ := genSource(t, `
entry main() {
  %x 8 = 0
  foo (x = 0) {
    foo (x = 0) {
      'x ++
    }
  }
}
`)

	inOrder(t, out, ".L_foo_0:", ".L_foo_1:", ".L_foo_1_end:", ".L_foo_0_end:")
}

func TestSyscallEmission(t *testing.T) {
	out, _ := genSource(t, `
write { = 1; fd 4; buf ptr; count word }

static {
  MSG 1: "hi"
}

entry main() {
  *write 1, MSG, 2
}
`)

	inOrder(t, out,
		"mov rdi, 1",
		"mov rsi, MSG",
		"mov rdx, 2",
		"mov rax, 1",
		"syscall",
	)

	inOrder(t, out, "section .data", `MSG: db "hi", 0`)
}

func TestSyscallArityCheckedBeforeEmission(t *testing.T) {
	out, file, ok := tryGenSource(t, `
write { = 1; fd 4; buf ptr; count word }

entry main() {
  *write 1
}
`)

	be.True(t, !ok)
	be.Equal(t, out, "")

	found := false
	for _, e := range file.Rep.Errors() {
		if e.Kind == report.KindArity {
			found = true
		}
	}
	be.True(t, found)
}

func TestSyscallPointerRejectsLiteral(t *testing.T) {
	_, file, ok := tryGenSource(t, `
write { = 1; fd 4; buf ptr; count word }

entry main() {
  *write 1, 2, 3
}
`)

	be.True(t, !ok)

	found := false
	for _, e := range file.Rep.Errors() {
		if e.Kind == report.KindWidth {
			found = true
		}
	}
	be.True(t, found)
}

func TestUnknownSyscall(t *testing.T) {
	_, file, ok := tryGenSource(t, `
entry main() {
  *reboot
}
`)

	be.True(t, !ok)

	found := false
	for _, e := range file.Rep.Errors() {
		if e.Kind == report.KindSyscall {
			found = true
		}
	}
	be.True(t, found)
}

func TestUnprovableReturnWarning(t *testing.T) {
	_, file := genSource(t, `
maybe(x: 8) -> 8 {
  (x != 0) => return 1
}

entry main() {
  %r 8
  'r = $maybe(1)
}
`)

	be.Equal(t, len(file.Rep.Warnings()), 1)
	be.True(t, strings.Contains(file.Rep.Warnings()[0].Message, "cannot prove"))
}

func TestDataSections(t *testing.T) {
	out, _ := genSource(t, `
static {
  COUNT 4: 7
}

entry main() {
  %x 8 = 5
  $puts "ok"
}
`)

	inOrder(t, out, "section .data", "v0_x: dq 5", "COUNT: dd 7")
	inOrder(t, out, "section .rodata", `.Lstr0: db "ok", 0`)
}

func TestStringPoolInterning(t *testing.T) {
	out, _ := genSource(t, `
entry main() {
  $puts "same"
  $puts "same"
}
`)

	be.Equal(t, strings.Count(out, `.Lstr0: db "same", 0`), 1)
	be.Equal(t, asmIndex(out, `.Lstr1: db "same", 0`), -1)
}

func TestRenderBytes(t *testing.T) {
	be.Equal(t, renderBytes("hi\n"), `"hi", 10, 0`)
	be.Equal(t, renderBytes(""), "0")
	be.Equal(t, renderBytes(`say "hi"`), `"say ", 34, "hi", 34, 0`)
	be.Equal(t, renderBytes("\x00ab"), `0, "ab", 0`)
}

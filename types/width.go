package types

// Width represents the byte width of a storage slot, register, or value.
type Width int

// WidthNone indicates the absence of a width: eg. a label with no return
// width.
const WidthNone Width = 0

// SlotWidths is the set of widths storage slots and registers may take on.
// The usable subset for a given target is additionally capped by the
// target's word size.
var SlotWidths = []Width{1, 2, 4, 8}

// WordWidth returns the width of a machine word for a word size in bits.
func WordWidth(wordBits int) Width {
	return Width(wordBits / 8)
}

// SizeKeyword returns the operand size keyword used to qualify a memory
// operand of this width.
func (w Width) SizeKeyword() string {
	switch w {
	case 1:
		return "byte"
	case 2:
		return "word"
	case 4:
		return "dword"
	default:
		return "qword"
	}
}

// DataDirective returns the assembler directive used to define a datum of
// this width.
func (w Width) DataDirective() string {
	switch w {
	case 1:
		return "db"
	case 2:
		return "dw"
	case 4:
		return "dd"
	default:
		return "dq"
	}
}

// -----------------------------------------------------------------------------

// ParamKind enumerates the kinds of syscall parameter specifications.
type ParamKind int

const (
	// ParamFixed is a fixed-width integer parameter.
	ParamFixed ParamKind = iota

	// ParamPointer is a buffer/pointer parameter.
	ParamPointer

	// ParamWord is a word-sized parameter.
	ParamWord
)

package arch

import (
	"fmt"

	"orec/types"
)

// ParamSpec describes one declared parameter of a syscall.
type ParamSpec struct {
	// The human-readable parameter label.  Documentation only.
	Label string

	// The parameter kind.
	Kind types.ParamKind

	// The byte width for fixed-width parameters.  Pointer and word parameters
	// are word sized.
	Width types.Width
}

// Syscall is a named, numbered system call together with its ordered
// parameter specifications.
type Syscall struct {
	// The syscall name, eg. `write`.
	Name string

	// The numeric syscall code.
	Code uint64

	// The ordered parameter specifications.
	Params []ParamSpec
}

// Convention describes how syscalls are invoked on the target.
type Convention struct {
	// The register the syscall number is placed in.
	NumberReg *Register

	// The argument registers in positional order.
	Args []*Register

	// The register the syscall result is read from.
	RetReg *Register

	// The entry mnemonic, eg. `syscall`, or zero if the target enters the
	// kernel through an interrupt.
	EntryMnemonic string

	// The interrupt number if the entry mechanism is an interrupt.
	EntryInt uint64
}

// EntryInstr returns the instruction text entering the kernel.
func (c *Convention) EntryInstr() string {
	if c.EntryMnemonic != "" {
		return c.EntryMnemonic
	}

	return fmt.Sprintf("int 0x%x", c.EntryInt)
}

// -----------------------------------------------------------------------------

// SyscallTable holds all declared syscalls and the calling convention.  Like
// the architecture description, it is immutable once sealed.
type SyscallTable struct {
	conv   *Convention
	byName map[string]*Syscall
	byCode map[uint64]*Syscall
}

// Conv returns the table's calling convention.
func (t *SyscallTable) Conv() *Convention {
	return t.conv
}

// Lookup looks up a syscall by name.
func (t *SyscallTable) Lookup(name string) (*Syscall, bool) {
	sc, ok := t.byName[name]
	return sc, ok
}

// LookupCode looks up a syscall by numeric code.
func (t *SyscallTable) LookupCode(code uint64) (*Syscall, bool) {
	sc, ok := t.byCode[code]
	return sc, ok
}

// -----------------------------------------------------------------------------

// TableBuilder accumulates syscall declarations and the calling convention
// into a SyscallTable.  Convention registers are named by alias and resolved
// through the architecture description.
type TableBuilder struct {
	desc     *Description
	t        *SyscallTable
	entrySet bool
}

// NewTableBuilder creates an empty table builder for the given target.
func NewTableBuilder(desc *Description) *TableBuilder {
	return &TableBuilder{
		desc: desc,
		t: &SyscallTable{
			byName: make(map[string]*Syscall),
			byCode: make(map[uint64]*Syscall),
		},
	}
}

// SetEntryMnemonic sets the syscall entry mechanism to a plain mnemonic.  The
// entry mechanism may be declared only once.
func (b *TableBuilder) SetEntryMnemonic(mnemonic string) error {
	if b.entrySet {
		return fmt.Errorf("syscall entry mechanism already declared")
	}

	b.ensureConv()
	b.t.conv.EntryMnemonic = mnemonic
	b.entrySet = true
	return nil
}

// SetEntryInt sets the syscall entry mechanism to a software interrupt.  The
// entry mechanism may be declared only once.
func (b *TableBuilder) SetEntryInt(num uint64) error {
	if b.entrySet {
		return fmt.Errorf("syscall entry mechanism already declared")
	}

	b.ensureConv()
	b.t.conv.EntryInt = num
	b.entrySet = true
	return nil
}

// SetConvention sets the syscall-number register, the argument registers in
// positional order, and the return register, all by alias.  Aliases resolve
// at the word width; the convention may be declared only once.
func (b *TableBuilder) SetConvention(numAlias string, argAliases []string, retAlias string) error {
	if b.t.conv != nil && b.t.conv.NumberReg != nil {
		return fmt.Errorf("calling convention already declared")
	}

	numReg, err := b.resolveAlias(numAlias)
	if err != nil {
		return err
	}

	args := make([]*Register, len(argAliases))
	for i, alias := range argAliases {
		if args[i], err = b.resolveAlias(alias); err != nil {
			return err
		}
	}

	retReg, err := b.resolveAlias(retAlias)
	if err != nil {
		return err
	}

	b.ensureConv()
	b.t.conv.NumberReg = numReg
	b.t.conv.Args = args
	b.t.conv.RetReg = retReg
	return nil
}

// AddSyscall declares a syscall.
func (b *TableBuilder) AddSyscall(name string, code uint64, params []ParamSpec) error {
	if _, ok := b.t.byName[name]; ok {
		return fmt.Errorf("duplicate syscall name: `%s`", name)
	}

	if prev, ok := b.t.byCode[code]; ok {
		return fmt.Errorf("duplicate syscall code: %d is already `%s`", code, prev.Name)
	}

	sc := &Syscall{Name: name, Code: code, Params: params}
	b.t.byName[name] = sc
	b.t.byCode[code] = sc
	return nil
}

// Seal finalizes and returns the table.  The convention must be complete and
// must supply at least as many argument registers as the widest syscall
// takes parameters.
func (b *TableBuilder) Seal() (*SyscallTable, error) {
	conv := b.t.conv
	if conv == nil || conv.NumberReg == nil || conv.RetReg == nil {
		return nil, fmt.Errorf("no calling convention declared for target")
	}

	if !b.entrySet {
		return nil, fmt.Errorf("no syscall entry mechanism declared for target")
	}

	maxArity := 0
	for _, sc := range b.t.byName {
		if len(sc.Params) > maxArity {
			maxArity = len(sc.Params)
		}
	}

	if len(conv.Args) < maxArity {
		return nil, fmt.Errorf(
			"calling convention names %d argument registers but syscalls take up to %d arguments",
			len(conv.Args), maxArity,
		)
	}

	return b.t, nil
}

func (b *TableBuilder) ensureConv() {
	if b.t.conv == nil {
		b.t.conv = &Convention{}
	}
}

func (b *TableBuilder) resolveAlias(alias string) (*Register, error) {
	r, ok := b.desc.Register(alias, b.desc.WordWidth())
	if !ok {
		if b.desc.HasAlias(alias) {
			return nil, fmt.Errorf("no word-width register declared for alias `%s`", alias)
		}

		return nil, fmt.Errorf("calling convention names undeclared register `%s`", alias)
	}

	return r, nil
}

package arch

import (
	"fmt"
	"strings"

	"orec/types"
	"orec/util"
)

// Register describes one symbolic register declared for a target.
type Register struct {
	// The symbolic alias the source refers to the register by.
	Alias string

	// The physical register name emitted into assembly.
	Phys string

	// The register's byte width.
	Width types.Width
}

// Description is an immutable description of a target architecture: its word
// size, its attribute-to-section mapping, and its register alias table.  Once
// built it is only ever queried.
//
// An alias may be declared at several widths, one physical name per width,
// the way x86 exposes `rax`, `eax`, and `ax` as views of one register.  The
// generator picks the width matching the operand it pairs the register with.
type Description struct {
	// The machine word size in bits.
	WordBits int

	sections  map[string]string
	registers map[string]map[types.Width]*Register
}

// WordWidth returns the target's word width in bytes.
func (d *Description) WordWidth() types.Width {
	return types.WordWidth(d.WordBits)
}

// Register looks up the register declared for an alias at a given width.
func (d *Description) Register(alias string, w types.Width) (*Register, bool) {
	family, ok := d.registers[alias]
	if !ok {
		return nil, false
	}

	r, ok := family[w]
	return r, ok
}

// HasAlias reports whether an alias is declared at any width.
func (d *Description) HasAlias(alias string) bool {
	_, ok := d.registers[alias]
	return ok
}

// Section looks up the output section an attribute maps to.
func (d *Description) Section(attr string) (string, bool) {
	s, ok := d.sections[attr]
	return s, ok
}

// SupportsWidth indicates whether a byte width is usable on this target: it
// must be one of the supported slot widths and no wider than a word.
func (d *Description) SupportsWidth(w types.Width) bool {
	return util.Contains(types.SlotWidths, w) && w <= d.WordWidth()
}

// -----------------------------------------------------------------------------

// DescriptionBuilder accumulates directives into a Description.  Builder
// methods return errors for conflicting or malformed entries; the caller
// decides how to surface them.
type DescriptionBuilder struct {
	d *Description
}

// NewDescriptionBuilder creates an empty description builder.
func NewDescriptionBuilder() *DescriptionBuilder {
	return &DescriptionBuilder{d: &Description{
		sections:  make(map[string]string),
		registers: make(map[string]map[types.Width]*Register),
	}}
}

// SetWordBits sets the target word size in bits.  It may be set only once.
func (b *DescriptionBuilder) SetWordBits(bits int) error {
	if b.d.WordBits != 0 {
		return fmt.Errorf("word size already declared")
	}

	switch bits {
	case 16, 32, 64:
		b.d.WordBits = bits
		return nil
	default:
		return fmt.Errorf("unknown word size: %d bits", bits)
	}
}

// MapSection maps an attribute name to an output section.  The target must
// look like a section name.
func (b *DescriptionBuilder) MapSection(attr, target string) error {
	if !strings.HasPrefix(target, ".") {
		return fmt.Errorf("invalid section target for attribute `%s`: `%s`", attr, target)
	}

	if _, ok := b.d.sections[attr]; ok {
		return fmt.Errorf("attribute `%s` already mapped to a section", attr)
	}

	b.d.sections[attr] = target
	return nil
}

// AddRegister declares a symbolic register.  Redeclaring an alias at a width
// it already has is an error; declaring it at a new width extends its family.
func (b *DescriptionBuilder) AddRegister(alias, phys string, widthBytes int) error {
	w := types.Width(widthBytes)
	if !util.Contains(types.SlotWidths, w) {
		return fmt.Errorf("unknown register width: %d bytes", widthBytes)
	}

	family, ok := b.d.registers[alias]
	if !ok {
		family = make(map[types.Width]*Register)
		b.d.registers[alias] = family
	}

	if _, ok := family[w]; ok {
		return fmt.Errorf("duplicate register alias: `%s`", alias)
	}

	family[w] = &Register{Alias: alias, Phys: phys, Width: w}
	return nil
}

// Build finalizes and returns the description.  A word size must have been
// set; register widths are checked against it here since `:WORD` need not
// come first.
func (b *DescriptionBuilder) Build() (*Description, error) {
	if b.d.WordBits == 0 {
		return nil, fmt.Errorf("no word size declared for target")
	}

	for _, family := range b.d.registers {
		for _, r := range family {
			if r.Width > b.d.WordWidth() {
				return nil, fmt.Errorf("register `%s` is wider than a machine word", r.Alias)
			}
		}
	}

	return b.d, nil
}

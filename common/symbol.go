package common

import (
	"orec/report"
	"orec/types"
)

// Symbol represents a semantic symbol: a named binding, label, or static
// datum.
type Symbol struct {
	// The name of the symbol as written in source.
	Name string

	// Where the symbol was defined.
	DefSpan *report.TextSpan

	// The width of the value stored in the symbol.  This is WidthNone for
	// routine labels with no return width.
	Width types.Width

	// The symbol's kind: what kind of thing this symbol represents.  This
	// must be one of the enumerated definition kinds.
	DefKind int

	// The assembly-level name of the symbol's storage.  For slots this is the
	// mangled data label backing the binding; for statics and routine labels
	// it is the source name.  Pinned bindings have no storage.
	StorageName string

	// The physical register a pinned binding is bound to.
	Reg string

	// The static initial value baked into the symbol's storage slot.
	// Initializers are compile-time values: re-declaring (shadowing) a
	// binding never reinitializes its slot.
	InitValue uint64
}

// Enumeration of different symbol kinds.
const (
	DefKindSlot = iota
	DefKindLabel
	DefKindStatic
	DefKindPinned
)

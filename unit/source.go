package unit

import (
	"fmt"

	"orec/ast"
	"orec/common"
	"orec/report"
)

// SourceFile represents a single Ore source file being compiled.
type SourceFile struct {
	// Context is the compilation context of the file.
	Context *report.Context

	// Rep is the reporter collecting diagnostics for this compilation.
	Rep *report.Reporter

	// Prog is the parsed program.
	Prog *ast.Program

	// SymbolTable maps names visible at file scope: labels, static data, and
	// the program's storage slots by their source names as first declared.
	SymbolTable map[string]*common.Symbol

	// Labels maps label names to their definitions.
	Labels map[string]*ast.LabelDef

	// Slots is the list of all storage slots allocated across the file in
	// allocation order.
	Slots []*common.Symbol

	// slotCount counts allocated slots to produce unique storage names.
	slotCount int
}

// NewSourceFile creates a new source file for the given paths.
func NewSourceFile(absPath, reprPath string, rep *report.Reporter) *SourceFile {
	return &SourceFile{
		Context:     &report.Context{AbsPath: absPath, ReprPath: reprPath},
		Rep:         rep,
		SymbolTable: make(map[string]*common.Symbol),
		Labels:      make(map[string]*ast.LabelDef),
	}
}

// AllocSlot allocates a new storage slot for a binding named name and returns
// its symbol.  Slot storage names are unique across the whole file even when
// the source name is shadowed.
func (sf *SourceFile) AllocSlot(name string, sym *common.Symbol) *common.Symbol {
	sym.StorageName = fmt.Sprintf("v%d_%s", sf.slotCount, name)
	sf.slotCount++
	sf.Slots = append(sf.Slots, sym)
	return sym
}

package resolve

import (
	"fmt"

	"orec/arch"
	"orec/ast"
	"orec/common"
	"orec/report"
	"orec/unit"
)

// Resolver is responsible for resolving identifier scoping and rewriting
// control-flow sugar into its explicit labeled form.  After resolution every
// conditional and loop carries an assembly label and every identifier, jump,
// and call points at its symbol, so the generator never performs lookups of
// its own.
type Resolver struct {
	// The Ore source file being resolved.
	file *unit.SourceFile

	// The target architecture description.
	desc *arch.Description

	// The stack of local scopes used to look up bindings.
	localScopes []map[string]*common.Symbol

	// The stack of label scopes used to resolve jump targets.
	labelScopes []map[string]string

	// The set of all named blocks in the program, used to distinguish an
	// unreachable jump target from an undefined name.
	namedBlocks map[string]struct{}

	// The label definition currently being resolved.
	curLabel *ast.LabelDef

	// The counter used to name anonymous block labels.
	anonCount int
}

// ResolveProgram resolves the given source file against the given target
// description.  It returns whether resolution succeeded.
func ResolveProgram(file *unit.SourceFile, desc *arch.Description) bool {
	r := &Resolver{file: file, desc: desc}

	r.collectGlobals()
	if !file.Rep.ShouldProceed() {
		return false
	}

	for _, def := range file.Prog.Labels {
		r.resolveLabel(def)
	}

	return file.Rep.ShouldProceed()
}

// -----------------------------------------------------------------------------

// collectGlobals registers all statics and labels in the file's symbol table
// and collects the set of named blocks.
func (r *Resolver) collectGlobals() {
	defer r.file.Rep.CatchErrors(r.file.Context)

	r.namedBlocks = make(map[string]struct{})

	for _, block := range r.file.Prog.Statics {
		if _, ok := r.desc.Section(block.Attr); !ok {
			r.recError(block.AttrSpan, report.KindSection,
				"no section mapped for attribute `%s`", block.Attr)
		}

		blockNames := make(map[string]struct{})
		for _, entry := range block.Entries {
			if _, ok := blockNames[entry.Name]; ok {
				r.recError(entry.NameSpan, report.KindData,
					"multiple static symbols named `%s` in one block", entry.Name)
				continue
			}
			blockNames[entry.Name] = struct{}{}

			if !entry.IsStr && !r.desc.SupportsWidth(entry.Width) {
				r.recError(entry.NameSpan, report.KindWidth,
					"unknown width: %d bytes", int(entry.Width))
			}

			r.defineGlobal(&common.Symbol{
				Name:        entry.Name,
				DefSpan:     entry.NameSpan,
				Width:       entry.Width,
				DefKind:     common.DefKindStatic,
				StorageName: entry.Name,
			})
		}
	}

	var entryDef *ast.LabelDef
	for _, def := range r.file.Prog.Labels {
		if prev, ok := r.file.Labels[def.Name]; ok {
			r.recError(def.NameSpan, report.KindLabel,
				"multiple labels named `%s`: first defined at line %d",
				def.Name, prev.NameSpan.StartLine+1)
			continue
		}

		r.file.Labels[def.Name] = def
		def.Sym = &common.Symbol{
			Name:        def.Name,
			DefSpan:     def.NameSpan,
			Width:       def.RetWidth,
			DefKind:     common.DefKindLabel,
			StorageName: def.Name,
		}
		r.defineGlobal(def.Sym)

		if def.Entry {
			if entryDef != nil {
				r.recError(def.NameSpan, report.KindLabel,
					"multiple entry labels: `%s` is already the entry", entryDef.Name)
			} else if len(def.Params) > 0 {
				r.recError(def.NameSpan, report.KindLabel,
					"entry label `%s` cannot take parameters", def.Name)
			} else {
				// The entry label is always emitted out of line, so marking it
				// inline would silently lose the inline request.
				if def.Inline {
					r.recError(def.NameSpan, report.KindLabel,
						"entry label `%s` cannot be inline", def.Name)
				}

				entryDef = def
			}
		}

		r.collectNamedBlocks(def.Body)
	}

	if entryDef == nil {
		r.file.Rep.ReportError(r.file.Context, nil, report.KindLabel,
			"program has no entry label")
	}
}

// collectNamedBlocks records the names of all named blocks under a block.
func (r *Resolver) collectNamedBlocks(block *ast.Block) {
	for _, stmt := range block.Stmts {
		if cb, ok := stmt.(*ast.CondBlock); ok {
			if cb.Name != "" {
				r.namedBlocks[cb.Name] = struct{}{}
			}

			r.collectNamedBlocks(cb.Body)
		}
	}
}

// defineGlobal defines a file-scoped symbol.  If the name is already taken,
// an error is reported.
func (r *Resolver) defineGlobal(sym *common.Symbol) {
	if prev, ok := r.file.SymbolTable[sym.Name]; ok {
		r.recError(sym.DefSpan, report.KindName,
			"multiple symbols named `%s`: first defined at line %d",
			sym.Name, prev.DefSpan.StartLine+1)
		return
	}

	r.file.SymbolTable[sym.Name] = sym
}

// -----------------------------------------------------------------------------

// resolveLabel resolves a single label definition.
func (r *Resolver) resolveLabel(def *ast.LabelDef) {
	defer r.file.Rep.CatchErrors(r.file.Context)

	defer func() {
		r.localScopes = nil
		r.labelScopes = nil
		r.curLabel = nil
	}()

	r.curLabel = def

	if def.RetWidth != 0 && !r.desc.SupportsWidth(def.RetWidth) {
		r.error(def.NameSpan, report.KindWidth,
			"unknown return width: %d bytes", int(def.RetWidth))
	}

	// Parameters bind in a scope enclosing the whole body.  Each parameter is
	// backed by a storage slot the prologue fills from its argument register.
	r.pushScope()
	defer r.popScope()

	for _, param := range def.Params {
		if !r.desc.SupportsWidth(param.Width) {
			r.error(param.Span, report.KindWidth,
				"unknown width: %d bytes", int(param.Width))
		}

		sym := &common.Symbol{
			Name:    param.Name,
			DefSpan: param.Span,
			Width:   param.Width,
			DefKind: common.DefKindSlot,
		}
		r.file.AllocSlot(param.Name, sym)
		r.defineLocal(sym)
		param.Sym = sym
	}

	r.resolveBlock(def.Body)
}

// -----------------------------------------------------------------------------

// lookup looks up a binding by name in all visible scopes, falling back to
// the file's global table.  If no symbol by the given name can be found, then
// an error is raised.
func (r *Resolver) lookup(name string, span *report.TextSpan) *common.Symbol {
	// Traverse local scopes in reverse order to implement shadowing.
	for i := len(r.localScopes) - 1; i > -1; i-- {
		if sym, ok := r.localScopes[i][name]; ok {
			return sym
		}
	}

	if sym, ok := r.file.SymbolTable[name]; ok {
		return sym
	}

	r.error(span, report.KindName, "undefined symbol: `%s`", name)
	return nil
}

// lookupShadow looks up a binding by name in the visible local scopes only.
// It returns nil if the name is not visible.
func (r *Resolver) lookupShadow(name string) *common.Symbol {
	for i := len(r.localScopes) - 1; i > -1; i-- {
		if sym, ok := r.localScopes[i][name]; ok {
			return sym
		}
	}

	return nil
}

// defineLocal defines a binding in the current local scope.
func (r *Resolver) defineLocal(sym *common.Symbol) {
	r.localScopes[len(r.localScopes)-1][sym.Name] = sym
}

// pushScope pushes a new local scope and label scope onto their stacks.
func (r *Resolver) pushScope() {
	r.localScopes = append(r.localScopes, make(map[string]*common.Symbol))
	r.labelScopes = append(r.labelScopes, make(map[string]string))
}

// popScope removes the top local scope and label scope from their stacks.
func (r *Resolver) popScope() {
	r.localScopes = r.localScopes[:len(r.localScopes)-1]
	r.labelScopes = r.labelScopes[:len(r.labelScopes)-1]
}

// blockLabel returns the assembly label for a block.  Named blocks get a
// readable name that still carries the counter: the same block name may recur
// in different scopes of one routine, and each occurrence must emit its own
// label.  Anonymous blocks get a bare generated name invisible to `jmp`.
func (r *Resolver) blockLabel(name string) string {
	var lbl string
	if name != "" {
		lbl = fmt.Sprintf(".L_%s_%d", name, r.anonCount)
	} else {
		lbl = fmt.Sprintf(".L%d", r.anonCount)
	}

	r.anonCount++
	return lbl
}

// -----------------------------------------------------------------------------

// error raises an error on the given span that aborts resolution of the
// current label definition.
func (r *Resolver) error(span *report.TextSpan, kind int, msg string, args ...interface{}) {
	panic(report.Raise(span, kind, msg, args...))
}

// recError reports a recoverable error on the given span.
func (r *Resolver) recError(span *report.TextSpan, kind int, msg string, args ...interface{}) {
	r.file.Rep.ReportError(r.file.Context, span, kind, msg, args...)
}

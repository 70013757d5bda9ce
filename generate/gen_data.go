package generate

import (
	"fmt"
	"strings"

	"orec/common"
)

// genData emits the data sections: the storage slots backing bindings, the
// static data blocks in the sections their attributes map to, and the pooled
// string literals.  Entries destined for the same section share one section
// header.
func (g *Generator) genData(out *strings.Builder) bool {
	type sectionGroup struct {
		name  string
		lines []string
	}

	var groups []*sectionGroup
	group := func(name string) *sectionGroup {
		for _, grp := range groups {
			if grp.name == name {
				return grp
			}
		}

		grp := &sectionGroup{name: name}
		groups = append(groups, grp)
		return grp
	}

	if len(g.file.Slots) > 0 {
		name, ok := g.section(common.AttrStatic, nil)
		if !ok {
			return false
		}

		grp := group(name)
		for _, sym := range g.file.Slots {
			grp.lines = append(grp.lines, fmt.Sprintf("%s: %s %d",
				sym.StorageName, sym.Width.DataDirective(), sym.InitValue))
		}
	}

	for _, block := range g.file.Prog.Statics {
		name, ok := g.section(block.Attr, block.AttrSpan)
		if !ok {
			return false
		}

		grp := group(name)
		for _, entry := range block.Entries {
			if entry.IsStr {
				grp.lines = append(grp.lines, fmt.Sprintf("%s: db %s",
					entry.Name, renderBytes(entry.Str)))
			} else {
				grp.lines = append(grp.lines, fmt.Sprintf("%s: %s %d",
					entry.Name, entry.Width.DataDirective(), entry.Num))
			}
		}
	}

	if len(g.strPool) > 0 {
		name, ok := g.section(common.AttrConst, nil)
		if !ok {
			return false
		}

		grp := group(name)
		for i, s := range g.strPool {
			grp.lines = append(grp.lines, fmt.Sprintf(".Lstr%d: db %s", i, renderBytes(s)))
		}
	}

	for _, grp := range groups {
		fmt.Fprintf(out, "\nsection %s\n", grp.name)
		for _, line := range grp.lines {
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}

	return true
}

// renderBytes renders a string as a `db` operand list: printable runs stay
// quoted, everything else becomes a numeric byte, and a NUL sentinel is
// appended so lengths can be recovered by scanning.
func renderBytes(s string) string {
	var parts []string
	var run strings.Builder

	flush := func() {
		if run.Len() > 0 {
			parts = append(parts, fmt.Sprintf("%q", run.String()))
			run.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= 0x20 && b < 0x7f && b != '"' && b != '\\' {
			run.WriteByte(b)
		} else {
			flush()
			parts = append(parts, fmt.Sprintf("%d", b))
		}
	}
	flush()

	parts = append(parts, "0")
	return strings.Join(parts, ", ")
}

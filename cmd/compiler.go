package cmd

import (
	"bufio"
	"io/ioutil"
	"os"
	"path/filepath"

	"orec/arch"
	"orec/generate"
	"orec/report"
	"orec/resolve"
	"orec/syntax"
	"orec/unit"
)

// Compiler drives one compile unit through its stages: parse, description
// build, resolve, generate.  Each stage runs to completion before the next
// begins, and a failed stage aborts the rest of the unit.
type Compiler struct {
	// The build profile for this compilation.
	profile *BuildProfile

	// The absolute path to the source file.
	srcPath string

	// The source file being compiled.  The compiler owns the unit's reporter:
	// nothing is shared with other compilations.
	file *unit.SourceFile
}

// NewCompiler creates a new compiler for the given profile and source path.
func NewCompiler(prof *BuildProfile, srcPath string) *Compiler {
	absPath, err := filepath.Abs(srcPath)
	if err != nil {
		report.ReportFatal("unable to resolve source path `%s`: %s", srcPath, err.Error())
	}

	return &Compiler{
		profile: prof,
		srcPath: absPath,
		file:    unit.NewSourceFile(absPath, srcPath, report.NewReporter(prof.LogLevel)),
	}
}

// Compile runs the unit through all stages.  It returns whether compilation
// succeeded.
func (c *Compiler) Compile() bool {
	f, err := os.Open(c.srcPath)
	if err != nil {
		report.ReportFatal("unable to open source file at `%s`: %s", c.srcPath, err.Error())
	}
	defer f.Close()

	p := syntax.NewParser(c.file, bufio.NewReader(f))
	if !p.Parse() {
		return false
	}

	desc, table, ok := c.buildTarget()
	if !ok {
		return false
	}

	if !resolve.ResolveProgram(c.file, desc) {
		return false
	}

	if c.profile.Dump {
		dumpProgram(c.file)
		return true
	}

	out, ok := generate.Generate(c.file, desc, table)
	if !ok {
		return false
	}

	if err := ioutil.WriteFile(c.profile.OutputPath, []byte(out), 0644); err != nil {
		report.ReportFatal("unable to write output to `%s`: %s", c.profile.OutputPath, err.Error())
	}

	return true
}

// Conclude replays the unit's warnings and displays the concluding message.
func (c *Compiler) Conclude() {
	c.file.Rep.Conclude(c.profile.OutputPath)
}

// buildTarget builds the architecture description and syscall table, from the
// source's directives when it carries any and otherwise from the build's TOML
// target profile.
func (c *Compiler) buildTarget() (*arch.Description, *arch.SyscallTable, bool) {
	if len(c.file.Prog.Directives) > 0 {
		desc, ok := arch.FromDirectives(c.file)
		if !ok {
			return nil, nil, false
		}

		table, ok := arch.TableFromProgram(c.file, desc)
		if !ok {
			return nil, nil, false
		}

		return desc, table, true
	}

	if c.profile.TargetPath == "" {
		report.ReportFatal("source `%s` has no architecture directives and no target profile was given", c.srcPath)
	}

	desc, table, err := arch.LoadTarget(c.profile.TargetPath)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	return desc, table, true
}

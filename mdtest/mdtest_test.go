package mdtest

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"orec/arch"
	"orec/generate"
	"orec/report"
	"orec/resolve"
	"orec/syntax"
	"orec/unit"
)

// compileSource runs a source string through the whole pipeline and returns
// the generated assembly along with the unit's reporter.
func compileSource(src string) (string, *report.Reporter) {
	rep := report.NewReporter(report.LogLevelSilent)
	file := unit.NewSourceFile("test.ore", "test.ore", rep)

	p := syntax.NewParser(file, bufio.NewReader(strings.NewReader(src)))
	if !p.Parse() {
		return "", rep
	}

	desc, ok := arch.FromDirectives(file)
	if !ok {
		return "", rep
	}

	table, ok := arch.TableFromProgram(file, desc)
	if !ok {
		return "", rep
	}

	if !resolve.ResolveProgram(file, desc) {
		return "", rep
	}

	out, _ := generate.Generate(file, desc, table)
	return out, rep
}

func TestMarkdownCases(t *testing.T) {
	raw, err := os.ReadFile("testdata/cases.md")
	be.Err(t, err, nil)

	cases, err := ExtractTestCases(string(raw))
	be.Err(t, err, nil)
	be.True(t, len(cases) > 0)

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			out, rep := compileSource(tc.Input)

			expectsError := false
			for _, a := range tc.Assertions {
				if a.Type == AssertionCompileError {
					expectsError = true
				}
			}

			if !expectsError && !rep.ShouldProceed() {
				for _, msg := range rep.Errors() {
					t.Errorf("unexpected error: %s", msg.Message)
				}
				return
			}

			for _, a := range tc.Assertions {
				switch a.Type {
				case AssertionAsmContains:
					for _, line := range strings.Split(a.Content, "\n") {
						line = strings.TrimRight(line, " ")
						if line == "" {
							continue
						}

						if !strings.Contains(out, line) {
							t.Errorf("missing line %q in output:\n%s", line, out)
						}
					}
				case AssertionAsmNotContains:
					for _, line := range strings.Split(a.Content, "\n") {
						line = strings.TrimSpace(line)
						if line == "" {
							continue
						}

						if strings.Contains(out, line) {
							t.Errorf("unexpected line %q in output:\n%s", line, out)
						}
					}
				case AssertionCompileError:
					if !containsMessage(rep.Errors(), a.Content) {
						t.Errorf("no error containing %q; got %s", a.Content, messageTexts(rep.Errors()))
					}
				case AssertionWarning:
					if !containsMessage(rep.Warnings(), a.Content) {
						t.Errorf("no warning containing %q; got %s", a.Content, messageTexts(rep.Warnings()))
					}
				}
			}
		})
	}
}

func containsMessage(msgs []*report.Message, substr string) bool {
	for _, msg := range msgs {
		if strings.Contains(msg.Message, substr) {
			return true
		}
	}

	return false
}

func messageTexts(msgs []*report.Message) string {
	texts := make([]string, len(msgs))
	for i, msg := range msgs {
		texts[i] = msg.Message
	}

	return "[" + strings.Join(texts, "; ") + "]"
}

// Package mdtest extracts end-to-end compiler test cases from Markdown
// documents.  A test case is a heading of the form `Test: <name>` followed by
// an `ore-program` fence holding the input source and one or more assertion
// fences: `asm-contains` / `asm-not-contains` lines matched against the
// generated assembly, `compile-error` substrings matched against reported
// errors, and `warning` substrings matched against reported warnings.
package mdtest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// AssertionType represents the type of an assertion fence.
type AssertionType string

const (
	AssertionAsmContains    AssertionType = "asm-contains"
	AssertionAsmNotContains AssertionType = "asm-not-contains"
	AssertionCompileError   AssertionType = "compile-error"
	AssertionWarning        AssertionType = "warning"
)

const inputFence = "ore-program"

// Assertion represents a single assertion of a test case.
type Assertion struct {
	Type    AssertionType
	Content string
}

// TestCase represents a complete test case extracted from Markdown.
type TestCase struct {
	// The test name from the heading (after "Test: ").
	Name string

	// The input source from the ore-program fence.
	Input string

	// All assertions for this test case.
	Assertions []Assertion
}

// ExtractTestCases parses a Markdown document and extracts all test cases.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	md := goldmark.New()
	source := []byte(markdownContent)

	doc := md.Parser().Parse(text.NewReader(source))

	var testCases []TestCase
	var current *TestCase

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			headingText := extractTextFromNode(n, source)
			if !strings.HasPrefix(headingText, "Test: ") {
				return ast.WalkContinue, nil
			}

			if current != nil {
				if err := validateTestCase(current); err != nil {
					return ast.WalkStop, err
				}
				testCases = append(testCases, *current)
			}

			current = &TestCase{Name: strings.TrimPrefix(headingText, "Test: ")}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			if language == "" {
				return ast.WalkContinue, nil
			}

			if current == nil {
				return ast.WalkStop, fmt.Errorf("`%s` fence found outside of a test case", language)
			}

			content := strings.TrimRight(extractCodeBlockContent(n, source), "\n")

			switch {
			case language == inputFence:
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("multiple input fences in test '%s'", current.Name)
				}
				current.Input = content
			case isAssertionFence(language):
				current.Assertions = append(current.Assertions, Assertion{
					Type:    AssertionType(language),
					Content: content,
				})
			default:
				return ast.WalkStop, fmt.Errorf("unknown fence language '%s' in test '%s'", language, current.Name)
			}
		}

		return ast.WalkContinue, nil
	})

	if err != nil {
		return nil, err
	}

	if current != nil {
		if err := validateTestCase(current); err != nil {
			return nil, err
		}
		testCases = append(testCases, *current)
	}

	return testCases, nil
}

func validateTestCase(tc *TestCase) error {
	if tc.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", tc.Name)
	}

	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertions", tc.Name)
	}

	return nil
}

// extractTextFromNode extracts plain text content from a markdown node.
func extractTextFromNode(node ast.Node, source []byte) string {
	var buf bytes.Buffer

	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if text, ok := n.(*ast.Text); ok {
				buf.Write(text.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})

	return buf.String()
}

// extractCodeBlockContent extracts the content from a fenced code block.
func extractCodeBlockContent(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer

	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		buf.Write(line.Value(source))
	}

	return buf.String()
}

func isAssertionFence(language string) bool {
	switch AssertionType(language) {
	case AssertionAsmContains, AssertionAsmNotContains, AssertionCompileError, AssertionWarning:
		return true
	default:
		return false
	}
}

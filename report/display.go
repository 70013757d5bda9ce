package report

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

var (
	successColorFG = pterm.FgLightGreen
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnColorFG    = pterm.FgYellow
	warnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
)

// DisplayInfoMessage prints a tagged informational message to the user.
func DisplayInfoMessage(tag, msg string) {
	successStyleBG.Print(tag)
	successColorFG.Println(" " + msg)
}

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	errorStyleBG.Print("Internal Error")
	errorColorFG.Println(" " + message)
	fmt.Println("This error was not supposed to happen: please report it")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	errorStyleBG.Print("Fatal Error")
	errorColorFG.Println(" " + message)
}

// displayFinished displays the concluding message for a compile unit.
func displayFinished(ok bool, outputPath string) {
	if ok {
		successStyleBG.Print("Done")
		successColorFG.Println(" " + outputPath)
	} else {
		errorStyleBG.Print("Failed")
		errorColorFG.Println(" compilation stopped")
	}
}

// -----------------------------------------------------------------------------

// display displays a compilation error or warning along with the source text
// it occurred over.
func (m *Message) display() {
	kindStr := kindStrings[m.Kind]
	if m.IsError {
		errorStyleBG.Print(kindStr + " Error")
	} else {
		warnStyleBG.Print(kindStr + " Warning")
	}

	if m.Span == nil {
		fmt.Printf(" %s: %s\n", m.Context.ReprPath, m.Message)
		return
	}

	fmt.Printf(" %s:%d:%d: %s\n", m.Context.ReprPath, m.Span.StartLine+1, m.Span.StartCol+1, m.Message)
	displaySourceText(m.Context.AbsPath, m.Span)
}

// displaySourceText displays the segment of source text defined by a text
// span.  If the source file cannot be read back, the excerpt is skipped: the
// message itself has already been displayed.
func displaySourceText(absPath string, span *TextSpan) {
	file, err := os.Open(absPath)
	if err != nil {
		return
	}
	defer file.Close()

	// Collect the source lines containing the given source text.
	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if sc.Err() != nil || len(lines) == 0 {
		return
	}

	for i, line := range lines {
		fmt.Printf("  %d | %s\n", span.StartLine+i+1, line)
	}

	// Underline the offending text on single-line spans.
	if len(lines) == 1 {
		prefixLen := len(fmt.Sprintf("  %d | ", span.StartLine+1))
		carretLen := span.EndCol - span.StartCol
		if carretLen < 1 {
			carretLen = 1
		}

		fmt.Print(strings.Repeat(" ", prefixLen+span.StartCol))
		errorColorFG.Println(strings.Repeat("^", carretLen))
	}

	fmt.Println()
}

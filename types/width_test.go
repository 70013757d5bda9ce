package types

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestSizeKeywords(t *testing.T) {
	be.Equal(t, Width(1).SizeKeyword(), "byte")
	be.Equal(t, Width(2).SizeKeyword(), "word")
	be.Equal(t, Width(4).SizeKeyword(), "dword")
	be.Equal(t, Width(8).SizeKeyword(), "qword")
}

func TestDataDirectives(t *testing.T) {
	be.Equal(t, Width(1).DataDirective(), "db")
	be.Equal(t, Width(2).DataDirective(), "dw")
	be.Equal(t, Width(4).DataDirective(), "dd")
	be.Equal(t, Width(8).DataDirective(), "dq")
}

func TestWordWidth(t *testing.T) {
	be.Equal(t, WordWidth(16), Width(2))
	be.Equal(t, WordWidth(32), Width(4))
	be.Equal(t, WordWidth(64), Width(8))
}

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taradepan/reaper/internal/rules"
)

func TestCheckUnusedFunctions(t *testing.T) {
	a := parseFile(t, "a.py", "def helper(): return 1\ndef orphan(): return 2\n")
	b := parseFile(t, "b.py", "from a import helper\nprint(helper())\n")

	got := rules.CheckUnusedFunctions([]*rules.File{a, b}, nil)

	assert.Len(t, got, 1)
	assert.Equal(t, "a.py", got[0].File)
	assert.Equal(t, "RP003", got[0].Code)
	assert.Contains(t, got[0].Message, "orphan")
}

func TestCheckUnusedFunctions_RecursiveOnlyCallStillUnused(t *testing.T) {
	a := parseFile(t, "a.py", "def fact(n):\n    return n * fact(n - 1)\n")

	got := rules.CheckUnusedFunctions([]*rules.File{a}, nil)

	assert.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "fact")
}

func TestCheckUnusedFunctions_ExportedIsExempt(t *testing.T) {
	a := parseFile(t, "a.py", "def helper(): return 1\n__all__ = ['helper']\n")

	got := rules.CheckUnusedFunctions([]*rules.File{a}, nil)

	assert.Empty(t, got)
}

func TestCheckUnusedFunctions_DecoratedIsExempt(t *testing.T) {
	a := parseFile(t, "a.py", "@app.route('/x')\ndef handler():\n    return 1\n")

	got := rules.CheckUnusedFunctions([]*rules.File{a}, nil)

	assert.Empty(t, got)
}

func TestCheckUnusedFunctions_AllowlistedDecoratorStillFlagged(t *testing.T) {
	a := parseFile(t, "a.py", "@app.route('/x')\ndef handler():\n    return 1\n")

	got := rules.CheckUnusedFunctions([]*rules.File{a}, []string{"app.route"})

	assert.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "handler")
}

func TestCheckUnusedFunctions_ConventionalNamesExempt(t *testing.T) {
	a := parseFile(t, "a.py", "def main():\n    return 1\ndef __init__(self):\n    pass\nclass C:\n    def __init__(self):\n        pass\n")

	got := rules.CheckUnusedFunctions([]*rules.File{a}, nil)

	assert.Empty(t, got)
}

func TestCheckUnusedClasses(t *testing.T) {
	a := parseFile(t, "a.py", "class Helper:\n    pass\nclass Orphan:\n    pass\n")
	b := parseFile(t, "b.py", "from a import Helper\nHelper()\n")

	got := rules.CheckUnusedClasses([]*rules.File{a, b}, nil)

	assert.Len(t, got, 1)
	assert.Equal(t, "a.py", got[0].File)
	assert.Contains(t, got[0].Message, "Orphan")
}

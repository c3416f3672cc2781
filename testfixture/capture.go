// Package testfixture holds helpers shared by this module's package
// tests: a callback-capturing containerio.Visitor and small class
// graph builders, generalizing the teacher's dexapktest package.
package testfixture

import (
	"fmt"
	"regexp"
)

// CaptureVisitor is a containerio.Visitor that records each callback
// as a formatted string instead of acting on it, so a test can assert
// on the recorded sequence.
type CaptureVisitor struct {
	Result []string
}

func (c *CaptureVisitor) VisitArchive(path string) {
	c.Result = append(c.Result, fmt.Sprintf("archive %s", path))
}

func (c *CaptureVisitor) VisitClass(name string, methodCount int) {
	c.Result = append(c.Result, fmt.Sprintf(" class %s methods: %d", name, methodCount))
}

func (c *CaptureVisitor) Verbose(level int, format string, args ...any) {}

// SqueezeWhite collapses repeated whitespace and converts tabs and
// newlines to single spaces, for comparing multi-line expected output
// against a captured one-liner.
func SqueezeWhite(s string) string {
	re := regexp.MustCompile(`[ \n\t]+`)
	return re.ReplaceAllLiteralString(s, " ")
}

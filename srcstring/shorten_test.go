package srcstring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dexpack/interdex/classmodel"
)

func TestShortenReplacesWithContainerLocalCandidate(t *testing.T) {
	a := classmodel.NewClass("A")
	a.SetSourceFile("com/app/Foo.java")
	a.AddMethod("onCreate")
	b := classmodel.NewClass("B")
	b.SetSourceFile("com/app/Foo.java")

	result := Shorten([]classmodel.Container{{a, b}})

	require.Equal(t, 1, result.Shortened)
	require.Equal(t, a.SourceFile(), b.SourceFile())
	require.Equal(t, "onCreate", a.SourceFile())
}

func TestShortenLeavesUnshortenableFileAlone(t *testing.T) {
	a := classmodel.NewClass("A")
	a.SetSourceFile("com/app/Foo.java")

	result := Shorten([]classmodel.Container{{a}})

	require.Equal(t, 0, result.Shortened)
	require.Equal(t, "com/app/Foo.java", a.SourceFile())
}

func TestShortenSkipsUnreasonableCandidates(t *testing.T) {
	a := classmodel.NewClass("A")
	a.SetSourceFile("com/app/Foo.java")
	a.AddMethod("bad,name")
	a.AddMethod("also:bad")
	a.AddMethod("fine")

	result := Shorten([]classmodel.Container{{a}})

	require.Equal(t, 1, result.Shortened)
	require.Equal(t, "fine", a.SourceFile())
}

func TestShortenDoesNotReuseAcrossContainers(t *testing.T) {
	a := classmodel.NewClass("A")
	a.SetSourceFile("com/app/Foo.java")
	a.AddMethod("shared")
	b := classmodel.NewClass("B")
	b.SetSourceFile("com/app/Bar.java")
	b.AddMethod("shared")

	Shorten([]classmodel.Container{{a}, {b}})

	require.Equal(t, "shared", a.SourceFile())
	require.Equal(t, "com/app/Bar.java", b.SourceFile())
}

func TestFormatMapping(t *testing.T) {
	a := classmodel.NewClass("A")
	a.SetSourceFile("com/app/Foo.java")
	a.AddMethod("onCreate")

	result := Shorten([]classmodel.Container{{a}})
	require.Contains(t, result.FormatMapping(), "com/app/Foo.java -> onCreate,")
}

package classmodel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyntheticClassShape(t *testing.T) {
	canary := NewSyntheticClass("secondary/dex01/Canary", "java/lang/Object")

	require.True(t, canary.IsSynthetic())
	require.True(t, canary.AccessFlags().IsPublic())
	require.True(t, canary.AccessFlags().IsInterface())
	require.True(t, canary.AccessFlags().IsAbstract())
	require.Equal(t, "java/lang/Object", canary.SuperName())
	require.True(t, canary.CanRename())
}

func TestInstructionReferencedClass(t *testing.T) {
	target := NewClass("Target")
	mi := NewMethodInstruction(MethodRef{DefiningClass: target, Name: "go"})
	fi := NewFieldInstruction(FieldRef{DefiningClass: target, Name: "x"})
	ti := NewTypeInstruction(target)
	none := Instruction{}

	require.Equal(t, target, mi.ReferencedClass())
	require.Equal(t, target, fi.ReferencedClass())
	require.Equal(t, target, ti.ReferencedClass())
	require.Nil(t, none.ReferencedClass())

	if _, ok := mi.Field(); ok {
		t.Fatalf("method instruction should not report a field operand")
	}
}

func TestClassLookupBuildsFromContainers(t *testing.T) {
	a := NewClass("A")
	b := NewClass("B")
	lookup := NewClassLookup(Container{a}, Container{b})

	got, ok := lookup.Resolve("A")
	require.True(t, ok)
	require.Equal(t, a, got)

	_, ok = lookup.Resolve("Missing")
	require.False(t, ok)
}

func TestContainerFlatten(t *testing.T) {
	a, b, c := NewClass("A"), NewClass("B"), NewClass("C")
	flat := Flatten([]Container{{a, b}, {c}})
	require.Equal(t, []*Class{a, b, c}, flat)
}

package refgather

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dexpack/interdex/classmodel"
)

func TestGatherReturnsDirectRefs(t *testing.T) {
	target := classmodel.NewClass("Target")
	cls := classmodel.NewClass("Caller")
	cls.AddMethodRef(classmodel.MethodRef{DefiningClass: target, Name: "go"})
	cls.AddMethodRef(classmodel.MethodRef{DefiningClass: target, Name: "go"}) // duplicate allowed
	cls.AddFieldRef(classmodel.FieldRef{DefiningClass: target, Name: "x"})

	g := NewGatherer()
	result := g.Gather(cls)

	require.Len(t, result.Methods, 2)
	require.Len(t, result.Fields, 1)
}

func TestGatherIsMemoized(t *testing.T) {
	target := classmodel.NewClass("Target")
	cls := classmodel.NewClass("Caller")
	cls.AddMethodRef(classmodel.MethodRef{DefiningClass: target, Name: "go"})

	g := NewGatherer()
	first := g.Gather(cls)
	cls.AddMethodRef(classmodel.MethodRef{DefiningClass: target, Name: "extra"})
	second := g.Gather(cls)

	require.Equal(t, first, second, "cached result must not reflect later mutation")
}

func TestGatherNilGathererIsUncached(t *testing.T) {
	target := classmodel.NewClass("Target")
	cls := classmodel.NewClass("Caller")
	cls.AddFieldRef(classmodel.FieldRef{DefiningClass: target, Name: "x"})

	var g *Gatherer
	result := g.Gather(cls)
	require.Len(t, result.Fields, 1)
}

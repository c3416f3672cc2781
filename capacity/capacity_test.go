package capacity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dexpack/interdex/classmodel"
)

func TestProfileLimits(t *testing.T) {
	modern := NewLimits(Modern)
	legacy := NewLimits(Legacy)

	require.Equal(t, 11600*1024, modern.MaxLinearAlloc)
	require.Equal(t, 2600*1024, legacy.MaxLinearAlloc)
	require.Equal(t, modern.MaxMethodRefs, legacy.MaxMethodRefs)
	require.Equal(t, MaxContainers, modern.MaxContainers)
}

func TestEstimateLinearAllocIsDeterministic(t *testing.T) {
	cls := classmodel.NewClass("Foo")
	cls.AddMethod("bar")
	cls.AddMethodRef(classmodel.MethodRef{Name: "x"})

	first := EstimateLinearAlloc(cls)
	second := EstimateLinearAlloc(cls)
	require.Equal(t, first, second)
	require.Greater(t, first, 0)
}

func TestEstimateLinearAllocGrowsWithDeclaredMethods(t *testing.T) {
	small := classmodel.NewClass("Small")
	big := classmodel.NewClass("Big")
	big.AddMethod("a")
	big.AddMethod("b")

	require.Less(t, EstimateLinearAlloc(small), EstimateLinearAlloc(big))
}

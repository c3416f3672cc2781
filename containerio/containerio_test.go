package containerio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dexpack/interdex/classmodel"
	"github.com/dexpack/interdex/testfixture"
)

func TestWriteThenReadRoundTrips(t *testing.T) {
	target := classmodel.NewClass("com/app/Target")
	a := classmodel.NewClass("com/app/A")
	a.SetCanRename(false)
	a.AddMethodRef(classmodel.MethodRef{DefiningClass: target, Name: "doThing"})
	testfixture.LinkMethodCall(a, target, "doThing")
	b := classmodel.NewClass("com/app/B")
	testfixture.LinkTypeRef(b, a)

	containers := []classmodel.Container{{a, b}, {target}}

	dir := t.TempDir()
	path := filepath.Join(dir, "modules.zip")
	require.NoError(t, Write(path, containers))

	visitor := &testfixture.CaptureVisitor{}
	got, err := Read(path, visitor)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, []string{"com/app/A", "com/app/B"}, got[0].Names())
	require.Equal(t, []string{"com/app/Target"}, got[1].Names())

	gotA, ok := classmodel.NewClassLookup(got...).Resolve("com/app/A")
	require.True(t, ok)
	require.False(t, gotA.CanRename())
	require.Len(t, gotA.MethodRefs(), 1)
	require.Equal(t, "com/app/Target", gotA.MethodRefs()[0].DefiningClass.Name())
	require.Len(t, gotA.Methods(), 1)

	gotB, ok := classmodel.NewClassLookup(got...).Resolve("com/app/B")
	require.True(t, ok)
	require.Len(t, gotB.TypeRefs(), 1)
	require.Equal(t, "com/app/A", gotB.TypeRefs()[0].Name())

	require.Contains(t, visitor.Result, "archive "+path)
}

func TestReadMissingArchiveErrors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.zip"), nil)
	require.Error(t, err)
}

func TestWriteCreatesParentlessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.zip")
	require.NoError(t, Write(path, []classmodel.Container{{classmodel.NewClass("X")}}))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.False(t, fi.IsDir())
}

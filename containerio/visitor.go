package containerio

// Visitor receives callbacks while Read walks an archive, mirroring
// the shape of the teacher's DexApkVisitor: visit order is logically
// top-down,
//
//	VisitArchive("modules.zip")
//	  VisitClass("com/app/Foo", 3)
//	  VisitClass("com/app/Bar", 1)
//	  ...
type Visitor interface {
	VisitArchive(path string)
	VisitClass(name string, methodCount int)
	Verbose(level int, format string, args ...any)
}

// NopVisitor discards every callback. It is the default when Read is
// called with a nil Visitor.
type NopVisitor struct{}

func (NopVisitor) VisitArchive(path string)                      {}
func (NopVisitor) VisitClass(name string, methodCount int)       {}
func (NopVisitor) Verbose(level int, format string, args ...any) {}

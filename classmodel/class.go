// Package classmodel holds the opaque class/container handles the rest
// of the packer operates on. Nothing in this package touches an on-disk
// container format; classes are either built programmatically (tests,
// fixtures) or populated by containerio.
package classmodel

// AccessFlags mirrors the handful of source-language access bits the
// packer and canary synthesizer need to inspect or set.
type AccessFlags uint32

const (
	AccPublic    AccessFlags = 1 << 0
	AccInterface AccessFlags = 1 << 1
	AccAbstract  AccessFlags = 1 << 2
)

func (f AccessFlags) IsPublic() bool    { return f&AccPublic != 0 }
func (f AccessFlags) IsInterface() bool { return f&AccInterface != 0 }
func (f AccessFlags) IsAbstract() bool  { return f&AccAbstract != 0 }

// MethodRef is a constant-pool entry naming a method. It is comparable
// so it can live in a dedup set keyed by value.
type MethodRef struct {
	DefiningClass *Class
	Name          string
	Descriptor    string
}

// FieldRef is a constant-pool entry naming a field.
type FieldRef struct {
	DefiningClass *Class
	Name          string
	Descriptor    string
}

// Class is an opaque handle for one class declared in some input
// container. Classes are never cloned; the planner only reorders
// references to them.
type Class struct {
	name        string
	superName   string
	accessFlags AccessFlags
	canRename   bool
	synthetic   bool
	sourceFile  string

	methods []*Method

	// direct constant-pool references this class contributes,
	// independent of which declared method (if any) uses them.
	methodRefs []MethodRef
	fieldRefs  []FieldRef
	typeRefs   []*Class
}

// NewClass builds a renamable, non-synthetic class handle. Use the
// setters below to adjust access flags, pin it against renaming, or
// populate its references and declared methods.
func NewClass(name string) *Class {
	return &Class{name: name, canRename: true}
}

// NewSyntheticClass builds a canary-style sentinel class: public,
// abstract, an interface, extending superName.
func NewSyntheticClass(name, superName string) *Class {
	c := NewClass(name)
	c.superName = superName
	c.accessFlags = AccPublic | AccInterface | AccAbstract
	c.synthetic = true
	return c
}

func (c *Class) Name() string             { return c.name }
func (c *Class) SuperName() string        { return c.superName }
func (c *Class) AccessFlags() AccessFlags { return c.accessFlags }
func (c *Class) CanRename() bool          { return c.canRename }
func (c *Class) IsSynthetic() bool        { return c.synthetic }

func (c *Class) SetAccessFlags(f AccessFlags) *Class { c.accessFlags = f; return c }
func (c *Class) SetCanRename(b bool) *Class          { c.canRename = b; return c }
func (c *Class) SetSuperName(s string) *Class        { c.superName = s; return c }

// SourceFile is the debug-info string naming the source file this
// class was compiled from, if any.
func (c *Class) SourceFile() string { return c.sourceFile }

// SetSourceFile records the debug-info source file name.
func (c *Class) SetSourceFile(s string) *Class { c.sourceFile = s; return c }

// AddMethodRef records a method reference contributed by this class's
// constant pool, independent of any declared method body.
func (c *Class) AddMethodRef(r MethodRef) *Class {
	c.methodRefs = append(c.methodRefs, r)
	return c
}

// AddFieldRef records a field reference contributed by this class's
// constant pool.
func (c *Class) AddFieldRef(r FieldRef) *Class {
	c.fieldRefs = append(c.fieldRefs, r)
	return c
}

// AddTypeRef records a type this class's descriptors mention (field
// types, supertype, etc.) — used by the cold-start pruner's
// type-containment closure.
func (c *Class) AddTypeRef(cls *Class) *Class {
	if cls != nil {
		c.typeRefs = append(c.typeRefs, cls)
	}
	return c
}

// MethodRefs returns the method references this class's constant pool
// holds. Duplicates are allowed; callers dedup into a set.
func (c *Class) MethodRefs() []MethodRef { return c.methodRefs }

// FieldRefs returns the field references this class's constant pool
// holds.
func (c *Class) FieldRefs() []FieldRef { return c.fieldRefs }

// TypeRefs returns the classes this class's descriptors reference.
func (c *Class) TypeRefs() []*Class { return c.typeRefs }

// AddMethod declares a new method on this class and returns it so the
// caller can append instructions to its body.
func (c *Class) AddMethod(name string) *Method {
	m := &Method{name: name, owner: c}
	c.methods = append(c.methods, m)
	return m
}

// Methods returns the methods declared by this class, in declaration
// order.
func (c *Class) Methods() []*Method { return c.methods }

// Method is one method body declared by a Class. Its instructions are
// what the cold-start pruner scans when deciding reachability.
type Method struct {
	name         string
	owner        *Class
	instructions []Instruction
}

func (m *Method) Name() string  { return m.name }
func (m *Method) Owner() *Class { return m.owner }
func (m *Method) Instructions() []Instruction {
	return m.instructions
}

// AddInstruction appends one instruction to this method's body.
func (m *Method) AddInstruction(i Instruction) *Method {
	m.instructions = append(m.instructions, i)
	return m
}

package containerio

import "github.com/dexpack/interdex/classmodel"

// wireContainer is the on-disk YAML shape of one output container: an
// ordered list of classes, each carrying just enough of its
// constant-pool shape to drive packing decisions (method count,
// method/field references, type references) without needing a real
// bytecode interpreter.
type wireContainer struct {
	Classes []wireClass `yaml:"classes"`
}

type wireClass struct {
	Name        string          `yaml:"name"`
	SuperName   string          `yaml:"super"`
	AccessFlags uint32          `yaml:"access_flags"`
	CanRename   bool            `yaml:"can_rename"`
	Synthetic   bool            `yaml:"synthetic,omitempty"`
	SourceFile  string          `yaml:"source_file,omitempty"`
	Methods     []wireMethod    `yaml:"methods,omitempty"`
	MethodRefs  []wireMethodRef `yaml:"method_refs,omitempty"`
	FieldRefs   []wireFieldRef  `yaml:"field_refs,omitempty"`
	TypeRefs    []string        `yaml:"type_refs,omitempty"`
}

type wireMethod struct {
	Name         string            `yaml:"name"`
	Instructions []wireInstruction `yaml:"instructions,omitempty"`
}

type wireInstruction struct {
	Kind      string         `yaml:"kind"`
	MethodRef *wireMethodRef `yaml:"method_ref,omitempty"`
	FieldRef  *wireFieldRef  `yaml:"field_ref,omitempty"`
	TypeRef   string         `yaml:"type_ref,omitempty"`
}

type wireMethodRef struct {
	Class      string `yaml:"class"`
	Name       string `yaml:"name"`
	Descriptor string `yaml:"descriptor,omitempty"`
}

type wireFieldRef struct {
	Class      string `yaml:"class"`
	Name       string `yaml:"name"`
	Descriptor string `yaml:"descriptor,omitempty"`
}

// buildStubs creates the *classmodel.Class for every class named
// across every container, before any reference is resolved, so
// forward and cross-container references both work regardless of
// declaration order.
func buildStubs(containers []wireContainer) map[string]*classmodel.Class {
	stubs := make(map[string]*classmodel.Class)
	ensure := func(name string) *classmodel.Class {
		if cls, ok := stubs[name]; ok {
			return cls
		}
		cls := classmodel.NewClass(name)
		stubs[name] = cls
		return cls
	}
	for _, wc := range containers {
		for _, c := range wc.Classes {
			ensure(c.Name)
			if c.SuperName != "" {
				ensure(c.SuperName)
			}
			for _, m := range c.MethodRefs {
				ensure(m.Class)
			}
			for _, f := range c.FieldRefs {
				ensure(f.Class)
			}
			for _, t := range c.TypeRefs {
				ensure(t)
			}
			for _, m := range c.Methods {
				for _, instr := range m.Instructions {
					switch instr.Kind {
					case "method":
						ensure(instr.MethodRef.Class)
					case "field":
						ensure(instr.FieldRef.Class)
					case "type":
						ensure(instr.TypeRef)
					}
				}
			}
		}
	}
	return stubs
}

// hydrate fills in the fields and bytecode of every stub class from
// its wire representation. Classes named only as a reference target
// (never declared with their own wireClass entry) are left as bare
// stubs, matching how an unresolved dex type reference behaves.
func hydrate(wc wireClass, stubs map[string]*classmodel.Class) {
	cls := stubs[wc.Name]
	cls.SetSuperName(wc.SuperName)
	cls.SetAccessFlags(classmodel.AccessFlags(wc.AccessFlags))
	cls.SetCanRename(wc.CanRename)
	cls.SetSourceFile(wc.SourceFile)

	for _, m := range wc.MethodRefs {
		cls.AddMethodRef(classmodel.MethodRef{
			DefiningClass: stubs[m.Class], Name: m.Name, Descriptor: m.Descriptor,
		})
	}
	for _, f := range wc.FieldRefs {
		cls.AddFieldRef(classmodel.FieldRef{
			DefiningClass: stubs[f.Class], Name: f.Name, Descriptor: f.Descriptor,
		})
	}
	for _, t := range wc.TypeRefs {
		cls.AddTypeRef(stubs[t])
	}
	for _, wm := range wc.Methods {
		method := cls.AddMethod(wm.Name)
		for _, wi := range wm.Instructions {
			switch wi.Kind {
			case "method":
				method.AddInstruction(classmodel.NewMethodInstruction(classmodel.MethodRef{
					DefiningClass: stubs[wi.MethodRef.Class], Name: wi.MethodRef.Name, Descriptor: wi.MethodRef.Descriptor,
				}))
			case "field":
				method.AddInstruction(classmodel.NewFieldInstruction(classmodel.FieldRef{
					DefiningClass: stubs[wi.FieldRef.Class], Name: wi.FieldRef.Name, Descriptor: wi.FieldRef.Descriptor,
				}))
			case "type":
				method.AddInstruction(classmodel.NewTypeInstruction(stubs[wi.TypeRef]))
			default:
				method.AddInstruction(classmodel.Instruction{})
			}
		}
	}
}

func toWireContainer(c classmodel.Container) wireContainer {
	wc := wireContainer{Classes: make([]wireClass, 0, len(c))}
	for _, cls := range c {
		wire := wireClass{
			Name:        cls.Name(),
			SuperName:   cls.SuperName(),
			AccessFlags: uint32(cls.AccessFlags()),
			CanRename:   cls.CanRename(),
			Synthetic:   cls.IsSynthetic(),
			SourceFile:  cls.SourceFile(),
		}
		for _, m := range cls.MethodRefs() {
			wire.MethodRefs = append(wire.MethodRefs, wireMethodRef{
				Class: nameOf(m.DefiningClass), Name: m.Name, Descriptor: m.Descriptor,
			})
		}
		for _, f := range cls.FieldRefs() {
			wire.FieldRefs = append(wire.FieldRefs, wireFieldRef{
				Class: nameOf(f.DefiningClass), Name: f.Name, Descriptor: f.Descriptor,
			})
		}
		for _, t := range cls.TypeRefs() {
			wire.TypeRefs = append(wire.TypeRefs, nameOf(t))
		}
		for _, m := range cls.Methods() {
			wm := wireMethod{Name: m.Name()}
			for _, instr := range m.Instructions() {
				wm.Instructions = append(wm.Instructions, toWireInstruction(instr))
			}
			wire.Methods = append(wire.Methods, wm)
		}
		wc.Classes = append(wc.Classes, wire)
	}
	return wc
}

func toWireInstruction(instr classmodel.Instruction) wireInstruction {
	if m, ok := instr.Method(); ok {
		return wireInstruction{Kind: "method", MethodRef: &wireMethodRef{
			Class: nameOf(m.DefiningClass), Name: m.Name, Descriptor: m.Descriptor,
		}}
	}
	if f, ok := instr.Field(); ok {
		return wireInstruction{Kind: "field", FieldRef: &wireFieldRef{
			Class: nameOf(f.DefiningClass), Name: f.Name, Descriptor: f.Descriptor,
		}}
	}
	if t, ok := instr.Type(); ok {
		return wireInstruction{Kind: "type", TypeRef: nameOf(t)}
	}
	return wireInstruction{Kind: "none"}
}

func nameOf(cls *classmodel.Class) string {
	if cls == nil {
		return ""
	}
	return cls.Name()
}

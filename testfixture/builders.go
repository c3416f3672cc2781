package testfixture

import "github.com/dexpack/interdex/classmodel"

// LinkMethodCall declares a method on caller whose body holds a
// single instruction calling a method named methodName on callee.
// Tests use this to build small call graphs without spelling out
// classmodel.NewMethodInstruction at every call site.
func LinkMethodCall(caller, callee *classmodel.Class, methodName string) {
	m := caller.AddMethod(methodName + "$caller")
	m.AddInstruction(classmodel.NewMethodInstruction(classmodel.MethodRef{
		DefiningClass: callee, Name: methodName,
	}))
}

// LinkTypeRef records that caller's descriptors mention callee (e.g. a
// field type or supertype), independent of any method body.
func LinkTypeRef(caller, callee *classmodel.Class) {
	caller.AddTypeRef(callee)
}

// Chain builds n classes named prefix+"0".."N-1" with no references
// between them, for tests that just need a scope of a given size.
func Chain(prefix string, n int) []*classmodel.Class {
	classes := make([]*classmodel.Class, n)
	for i := range classes {
		classes[i] = classmodel.NewClass(prefix + itoa(i))
	}
	return classes
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

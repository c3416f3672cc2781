package classmodel

// InstrKind tags which operand variant an Instruction carries. Modeled
// as an explicit tagged union rather than a type-switch over an
// interface, per the "no runtime casts on opcode operands" guidance:
// the cold-start pruner only ever needs the defining class of an
// operand, never the operand's concrete opcode.
type InstrKind int

const (
	NoOperand InstrKind = iota
	MethodOperand
	FieldOperand
	TypeOperand
)

// Instruction is one bytecode instruction's operand, reduced to the
// three things the pruner cares about: does it name a method, a
// field, or a type, and what class defines that name.
type Instruction struct {
	kind   InstrKind
	method MethodRef
	field  FieldRef
	typ    *Class
}

// NewMethodInstruction builds an instruction whose operand is a method
// reference.
func NewMethodInstruction(ref MethodRef) Instruction {
	return Instruction{kind: MethodOperand, method: ref}
}

// NewFieldInstruction builds an instruction whose operand is a field
// reference.
func NewFieldInstruction(ref FieldRef) Instruction {
	return Instruction{kind: FieldOperand, field: ref}
}

// NewTypeInstruction builds an instruction whose operand is a bare
// type reference (e.g. check-cast, new-instance).
func NewTypeInstruction(cls *Class) Instruction {
	return Instruction{kind: TypeOperand, typ: cls}
}

func (i Instruction) Kind() InstrKind { return i.kind }

// Method returns the instruction's method operand, if it has one.
func (i Instruction) Method() (MethodRef, bool) {
	return i.method, i.kind == MethodOperand
}

// Field returns the instruction's field operand, if it has one.
func (i Instruction) Field() (FieldRef, bool) {
	return i.field, i.kind == FieldOperand
}

// Type returns the instruction's type operand, if it has one.
func (i Instruction) Type() (*Class, bool) {
	return i.typ, i.kind == TypeOperand
}

// ReferencedClass returns the defining class of this instruction's
// operand, or nil if the instruction has no class-valued operand (or
// the operand's defining class could not be resolved).
func (i Instruction) ReferencedClass() *Class {
	switch i.kind {
	case MethodOperand:
		return i.method.DefiningClass
	case FieldOperand:
		return i.field.DefiningClass
	case TypeOperand:
		return i.typ
	default:
		return nil
	}
}

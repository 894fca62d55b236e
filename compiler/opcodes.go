package compiler

import "fmt"

// Opcode is a single byte identifying one VM instruction. Operands, when an
// instruction has any, are encoded inline immediately after the opcode byte.
type Opcode byte

// The opcode set, exactly spec.md §4.3's table. Comparisons other than
// EQUAL/GREATER/LESS are derived at emission time (`a != b` compiles to
// EQUAL, NOT; `a <= b` to GREATER, NOT; `a >= b` to LESS, NOT) rather than
// being opcodes of their own.
const (
	OP_CONSTANT Opcode = iota
	OP_NIL
	OP_TRUE
	OP_FALSE
	OP_POP
	OP_GET_LOCAL
	OP_SET_LOCAL
	OP_GET_GLOBAL
	OP_SET_GLOBAL
	OP_DEFINE_GLOBAL
	OP_GET_UPVALUE
	OP_SET_UPVALUE
	OP_EQUAL
	OP_GREATER
	OP_LESS
	OP_ADD
	OP_SUBTRACT
	OP_MULTIPLY
	OP_DIVIDE
	OP_NOT
	OP_NEGATE
	OP_PRINT
	OP_JUMP
	OP_JUMP_IF_FALSE
	OP_LOOP
	OP_CALL
	OP_CLOSURE
	OP_CLOSE_UPVALUE
	OP_RETURN
)

// OpCodeDefinition names an opcode and the width, in bytes, of each of its
// inline operands. CLOSURE is variable-width (a 1-byte function-constant
// index followed by 2 bytes per upvalue) and is handled specially by both
// the emitter and the disassembler rather than through this table.
type OpCodeDefinition struct {
	Name          string
	OperandWidths []int
}

var definitions = map[Opcode]*OpCodeDefinition{
	OP_CONSTANT:      {Name: "OP_CONSTANT", OperandWidths: []int{1}},
	OP_NIL:           {Name: "OP_NIL", OperandWidths: []int{}},
	OP_TRUE:          {Name: "OP_TRUE", OperandWidths: []int{}},
	OP_FALSE:         {Name: "OP_FALSE", OperandWidths: []int{}},
	OP_POP:           {Name: "OP_POP", OperandWidths: []int{}},
	OP_GET_LOCAL:     {Name: "OP_GET_LOCAL", OperandWidths: []int{1}},
	OP_SET_LOCAL:     {Name: "OP_SET_LOCAL", OperandWidths: []int{1}},
	OP_GET_GLOBAL:    {Name: "OP_GET_GLOBAL", OperandWidths: []int{1}},
	OP_SET_GLOBAL:    {Name: "OP_SET_GLOBAL", OperandWidths: []int{1}},
	OP_DEFINE_GLOBAL: {Name: "OP_DEFINE_GLOBAL", OperandWidths: []int{1}},
	OP_GET_UPVALUE:   {Name: "OP_GET_UPVALUE", OperandWidths: []int{1}},
	OP_SET_UPVALUE:   {Name: "OP_SET_UPVALUE", OperandWidths: []int{1}},
	OP_EQUAL:         {Name: "OP_EQUAL", OperandWidths: []int{}},
	OP_GREATER:       {Name: "OP_GREATER", OperandWidths: []int{}},
	OP_LESS:          {Name: "OP_LESS", OperandWidths: []int{}},
	OP_ADD:           {Name: "OP_ADD", OperandWidths: []int{}},
	OP_SUBTRACT:      {Name: "OP_SUBTRACT", OperandWidths: []int{}},
	OP_MULTIPLY:      {Name: "OP_MULTIPLY", OperandWidths: []int{}},
	OP_DIVIDE:        {Name: "OP_DIVIDE", OperandWidths: []int{}},
	OP_NOT:           {Name: "OP_NOT", OperandWidths: []int{}},
	OP_NEGATE:        {Name: "OP_NEGATE", OperandWidths: []int{}},
	OP_PRINT:         {Name: "OP_PRINT", OperandWidths: []int{}},
	OP_JUMP:          {Name: "OP_JUMP", OperandWidths: []int{2}},
	OP_JUMP_IF_FALSE: {Name: "OP_JUMP_IF_FALSE", OperandWidths: []int{2}},
	OP_LOOP:          {Name: "OP_LOOP", OperandWidths: []int{2}},
	OP_CALL:          {Name: "OP_CALL", OperandWidths: []int{1}},
	OP_CLOSURE:       {Name: "OP_CLOSURE", OperandWidths: []int{1}},
	OP_CLOSE_UPVALUE: {Name: "OP_CLOSE_UPVALUE", OperandWidths: []int{}},
	OP_RETURN:        {Name: "OP_RETURN", OperandWidths: []int{}},
}

// Get looks up an opcode's definition.
func Get(op Opcode) (*OpCodeDefinition, error) {
	def, ok := definitions[op]
	if !ok {
		return nil, fmt.Errorf("opcode %d undefined", op)
	}
	return def, nil
}

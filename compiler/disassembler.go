package compiler

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/informatter/lumen/value"
)

// Instruction is one decoded instruction: its byte offset, opcode name,
// and a human-readable rendering of its operands. The VM's trace mode and
// the compiler test suite both consume these records rather than
// re-deriving them from raw bytes (spec.md §4.4).
type Instruction struct {
	Offset int
	Name   string
	Text   string
}

// Disassemble decodes every instruction in chunk, recursing into any
// function constants reached through OP_CLOSURE so nested bodies are
// fully represented (spec.md §4.4).
func Disassemble(chunk *value.Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	offset := 0
	for offset < len(chunk.Code) {
		instr, next := DisassembleInstruction(chunk, offset)
		fmt.Fprintf(&b, "%04d %s\n", instr.Offset, instr.Text)
		offset = next
	}
	return b.String()
}

// DisassembleInstruction decodes the single instruction at offset,
// returning it plus the offset of the following instruction.
func DisassembleInstruction(chunk *value.Chunk, offset int) (Instruction, int) {
	line := chunk.Line(offset)
	op := Opcode(chunk.Code[offset])
	def, err := Get(op)
	if err != nil {
		return Instruction{Offset: offset, Name: "UNKNOWN", Text: fmt.Sprintf("[line %d] unknown opcode %d", line, op)}, offset + 1
	}

	switch op {
	case OP_CLOSURE:
		return disassembleClosure(chunk, def, offset, line)
	default:
		return disassembleSimple(chunk, def, offset, line)
	}
}

func disassembleSimple(chunk *value.Chunk, def *OpCodeDefinition, offset, line int) (Instruction, int) {
	next := offset + 1
	operandText := ""
	for _, width := range def.OperandWidths {
		switch width {
		case 1:
			operand := int(chunk.Code[next])
			operandText += formatOperand(chunk, def.Name, operand)
			next++
		case 2:
			operand := binary.BigEndian.Uint16(chunk.Code[next : next+2])
			operandText += fmt.Sprintf(" %d", operand)
			next += 2
		}
	}
	text := fmt.Sprintf("[line %-4d] %-18s%s", line, def.Name, operandText)
	return Instruction{Offset: offset, Name: def.Name, Text: text}, next
}

// formatOperand renders a one-byte operand, printing the referenced
// constant's value for opcodes that address the constant pool.
func formatOperand(chunk *value.Chunk, name string, operand int) string {
	switch name {
	case "OP_CONSTANT", "OP_GET_GLOBAL", "OP_SET_GLOBAL", "OP_DEFINE_GLOBAL":
		if operand >= 0 && operand < len(chunk.Constants) {
			return fmt.Sprintf(" %d '%s'", operand, chunk.Constants[operand].String())
		}
	}
	return fmt.Sprintf(" %d", operand)
}

// disassembleClosure decodes OP_CLOSURE's function-constant byte followed
// by one (is_local, index) pair per upvalue, then recurses into the
// function's own Chunk.
func disassembleClosure(chunk *value.Chunk, def *OpCodeDefinition, offset, line int) (Instruction, int) {
	constIdx := int(chunk.Code[offset+1])
	next := offset + 2

	var b strings.Builder
	fmt.Fprintf(&b, "[line %-4d] %-18s %d", line, def.Name, constIdx)

	var fn *value.Function
	if constIdx < len(chunk.Constants) && chunk.Constants[constIdx].IsObject() {
		if f, ok := chunk.Constants[constIdx].AsObject().(*value.Function); ok {
			fn = f
		}
	}
	if fn != nil {
		fmt.Fprintf(&b, " '%s'", fn.String())
		for i := 0; i < fn.UpvalueCount; i++ {
			isLocal := chunk.Code[next]
			index := chunk.Code[next+1]
			kind := "upvalue"
			if isLocal == 1 {
				kind = "local"
			}
			fmt.Fprintf(&b, "\n      | %04d      %s %d", next, kind, index)
			next += 2
		}
	}

	instr := Instruction{Offset: offset, Name: def.Name, Text: b.String()}

	if fn != nil {
		nested := Disassemble(&fn.Chunk, fn.String())
		instr.Text += "\n" + nested
	}
	return instr, next
}

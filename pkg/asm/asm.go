package asm

import (
	"fmt"
	"math/big"
	"strings"

	"minicc/pkg/cpu"
)

type operandKind int

const (
	operandImmediate operandKind = iota // LOADI 5
	operandName                         // LOAD x
	operandStore                        // MOV x, ACC
)

var mnemonics = map[string]struct {
	op   cpu.Op
	kind operandKind
}{
	"LOADI": {cpu.OpLOADI, operandImmediate},
	"LOAD":  {cpu.OpLOAD, operandName},
	"MOV":   {cpu.OpMOV, operandStore},
}

type parsedLine struct {
	lineNo   int
	mnemonic string
	operands []string
}

// Assemble decodes listing text into instructions. The returned map takes an
// instruction index to its 1-based line in code.
func Assemble(code string) ([]cpu.Instruction, map[int]int, error) {
	lines := strings.Split(code, "\n")
	program := make([]cpu.Instruction, 0, len(lines))
	sourceMap := make(map[int]int)

	for i, raw := range lines {
		lineNo := i + 1
		p := parseLine(raw, lineNo)
		if p.mnemonic == "" {
			continue
		}

		in, err := encode(p)
		if err != nil {
			return nil, nil, err
		}
		sourceMap[len(program)] = lineNo
		program = append(program, in)
	}

	return program, sourceMap, nil
}

func encode(p parsedLine) (cpu.Instruction, error) {
	def, ok := mnemonics[p.mnemonic]
	if !ok {
		return cpu.Instruction{}, fmt.Errorf("unknown instruction on line %d: %s", p.lineNo, p.mnemonic)
	}

	switch def.kind {
	case operandImmediate:
		if len(p.operands) != 1 {
			return cpu.Instruction{}, fmt.Errorf("%s expects exactly one operand on line %d", p.mnemonic, p.lineNo)
		}
		imm, ok := parseImmediate(p.operands[0])
		if !ok {
			return cpu.Instruction{}, fmt.Errorf("invalid immediate on line %d: %s", p.lineNo, p.operands[0])
		}
		return cpu.Instruction{Op: def.op, Imm: imm}, nil

	case operandName:
		if len(p.operands) != 1 {
			return cpu.Instruction{}, fmt.Errorf("%s expects exactly one operand on line %d", p.mnemonic, p.lineNo)
		}
		if !isIdentifier(p.operands[0]) {
			return cpu.Instruction{}, fmt.Errorf("invalid variable name on line %d: %s", p.lineNo, p.operands[0])
		}
		return cpu.Instruction{Op: def.op, Name: p.operands[0]}, nil

	default: // operandStore
		if len(p.operands) != 2 {
			return cpu.Instruction{}, fmt.Errorf("%s expects two operands on line %d", p.mnemonic, p.lineNo)
		}
		if !isIdentifier(p.operands[0]) {
			return cpu.Instruction{}, fmt.Errorf("invalid variable name on line %d: %s", p.lineNo, p.operands[0])
		}
		if !strings.EqualFold(p.operands[1], "ACC") {
			return cpu.Instruction{}, fmt.Errorf("%s source must be ACC on line %d, got %s", p.mnemonic, p.lineNo, p.operands[1])
		}
		return cpu.Instruction{Op: def.op, Name: p.operands[0]}, nil
	}
}

func parseLine(raw string, lineNo int) parsedLine {
	p := parsedLine{lineNo: lineNo}

	fields := strings.Fields(normalizeInstructionText(stripComments(raw)))
	if len(fields) == 0 {
		return p
	}

	p.mnemonic = strings.ToUpper(fields[0])
	if len(fields) > 1 {
		p.operands = fields[1:]
	}
	return p
}

// stripComments drops everything from the first ';'.
func stripComments(line string) string {
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		return line[:idx]
	}
	return line
}

// normalizeInstructionText turns operand commas into field separators so
// "MOV a,ACC" and "MOV a , ACC" split like "MOV a ACC".
func normalizeInstructionText(line string) string {
	return strings.ReplaceAll(line, ",", " ")
}

func parseImmediate(s string) (*big.Int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, false
		}
	}
	return new(big.Int).SetString(s, 10)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		letter := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		if i == 0 && !letter {
			return false
		}
		if !letter && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

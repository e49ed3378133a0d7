package asm

import (
	"math/big"
	"reflect"
	"strings"
	"testing"

	"minicc/pkg/cpu"
)

func TestHelperFunctions(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"abc", true},
		{"abc1", true},
		{"A", true},
		{"_abc", false},
		{"1abc", false},
		{"", false},
		{"ab-c", false},
	}
	for _, tc := range tests {
		if got := isIdentifier(tc.input); got != tc.want {
			t.Errorf("isIdentifier(%q) = %v; want %v", tc.input, got, tc.want)
		}
	}

	if got := stripComments("LOAD a ; note"); got != "LOAD a " {
		t.Errorf("stripComments = %q", got)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want parsedLine
	}{
		{"LOADI 5", parsedLine{lineNo: 1, mnemonic: "LOADI", operands: []string{"5"}}},
		{"  mov a,ACC  ; store", parsedLine{lineNo: 1, mnemonic: "MOV", operands: []string{"a", "ACC"}}},
		{"MOV a , ACC", parsedLine{lineNo: 1, mnemonic: "MOV", operands: []string{"a", "ACC"}}},
		{"; only a comment", parsedLine{lineNo: 1}},
		{"   ", parsedLine{lineNo: 1}},
		{",", parsedLine{lineNo: 1}},
	}
	for _, tc := range tests {
		if got := parseLine(tc.line, 1); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("parseLine(%q) = %+v; want %+v", tc.line, got, tc.want)
		}
	}
}

func TestAssemble(t *testing.T) {
	code := `
; a = b = 7
LOADI 7
MOV b, ACC

load b
MOV a, ACC
`
	prog, sourceMap, err := Assemble(code)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	want := []cpu.Instruction{
		{Op: cpu.OpLOADI, Imm: big.NewInt(7)},
		{Op: cpu.OpMOV, Name: "b"},
		{Op: cpu.OpLOAD, Name: "b"},
		{Op: cpu.OpMOV, Name: "a"},
	}
	if len(prog) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(prog), len(want))
	}
	for i := range want {
		if prog[i].String() != want[i].String() {
			t.Errorf("instruction %d = %s, want %s", i, prog[i], want[i])
		}
	}

	wantMap := map[int]int{0: 3, 1: 4, 2: 6, 3: 7}
	if !reflect.DeepEqual(sourceMap, wantMap) {
		t.Errorf("sourceMap = %v, want %v", sourceMap, wantMap)
	}
}

// Assembling the String() form of a program gives the program back.
func TestAssemble_RoundTrip(t *testing.T) {
	prog := []cpu.Instruction{
		{Op: cpu.OpLOADI, Imm: new(big.Int).Lsh(big.NewInt(1), 100)},
		{Op: cpu.OpMOV, Name: "x"},
		{Op: cpu.OpLOAD, Name: "x"},
	}
	var sb strings.Builder
	for _, in := range prog {
		sb.WriteString(in.String() + "\n")
	}
	got, _, err := Assemble(sb.String())
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	for i := range prog {
		if got[i].String() != prog[i].String() {
			t.Errorf("instruction %d = %s, want %s", i, got[i], prog[i])
		}
	}
}

func TestAssemble_Errors(t *testing.T) {
	tests := []struct {
		code    string
		wantMsg string
	}{
		{"ADD a", "unknown instruction on line 1"},
		{"LOADI", "expects exactly one operand"},
		{"LOADI 1 2", "expects exactly one operand"},
		{"LOADI -1", "invalid immediate"},
		{"LOADI x", "invalid immediate"},
		{"LOAD 5", "invalid variable name"},
		{"LOAD a b", "expects exactly one operand"},
		{"MOV a", "expects two operands"},
		{"MOV a, b", "source must be ACC"},
		{"\n\nMOV 1, ACC", "invalid variable name on line 3"},
	}
	for _, tc := range tests {
		_, _, err := Assemble(tc.code)
		if err == nil {
			t.Errorf("Assemble(%q) succeeded, want error", tc.code)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantMsg) {
			t.Errorf("Assemble(%q) error = %q, want it to contain %q", tc.code, err, tc.wantMsg)
		}
	}
}

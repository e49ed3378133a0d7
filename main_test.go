package main

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"minicc/pkg/compiler"
	"minicc/pkg/cpu"
)

func TestVarFlags_Set(t *testing.T) {
	tests := []struct {
		arg     string
		name    string
		want    string
		wantErr bool
	}{
		{"b=3", "b", "3", false},
		{"total=-42", "total", "-42", false},
		{"big=123456789012345678901234567890", "big", "123456789012345678901234567890", false},
		{"b", "", "", true},
		{"=3", "", "", true},
		{"b=", "", "", true},
		{"b=x", "", "", true},
		{"b=1=2", "", "", true},
	}
	for _, tt := range tests {
		v := varFlags{}
		err := v.Set(tt.arg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Set(%q) succeeded, want error", tt.arg)
			}
			if len(v) != 0 {
				t.Errorf("Set(%q) stored %v alongside an error", tt.arg, v)
			}
			continue
		}
		if err != nil {
			t.Errorf("Set(%q) failed: %v", tt.arg, err)
			continue
		}
		if got, ok := v[tt.name]; !ok || got.String() != tt.want {
			t.Errorf("Set(%q) = %v, want %s=%s", tt.arg, v, tt.name, tt.want)
		}
	}
}

func TestVarFlags_Repeated(t *testing.T) {
	v := varFlags{}
	for _, arg := range []string{"a=1", "b=2", "a=3"} {
		if err := v.Set(arg); err != nil {
			t.Fatal(err)
		}
	}
	if len(v) != 2 || v["a"].Cmp(big.NewInt(3)) != 0 || v["b"].Cmp(big.NewInt(2)) != 0 {
		t.Errorf("flags = %v, want a=3 b=2", v)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		source  string
		reload  bool
		want    []string
		wantErr string
	}{
		{"Listing", "prog.asm", "LOADI 5\nMOV a, ACC\n", false, []string{"LOADI 5", "MOV a, ACC"}, ""},
		{"Listing Upper Ext", "PROG.ASM", "LOAD b ; copy\nMOV a,ACC", false, []string{"LOAD b", "MOV a, ACC"}, ""},
		{"Source", "prog.txt", "a = b = 7", false, []string{"LOADI 7", "MOV b, ACC", "MOV a, ACC"}, ""},
		{"Source Reload", "prog.c", "a = b = 7", true, []string{"LOADI 7", "MOV b, ACC", "LOAD b", "MOV a, ACC"}, ""},
		{"Mnemonic As Source", "prog.txt", "LOADI 5", false, []string{"LOAD LOADI"}, ""},
		{"Declaration", "prog.txt", "int x = 5;", false, nil, ""},
		{"Source As Listing", "prog.asm", "a = 5", false, nil, "assembly failed"},
		{"Bad Listing", "prog.asm", "JMP 3", false, nil, "assembly failed"},
		{"Bad Source", "prog.txt", "a =", false, nil, "compilation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := load(tt.path, tt.source, tt.reload)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("load error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			got := make([]string, len(program))
			for i, in := range program {
				got[i] = in.String()
			}
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("program = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad_CompileErrorUnwraps(t *testing.T) {
	_, err := load("prog.txt", "a = #", false)
	if !errors.Is(err, compiler.ErrUnknownCharacter) {
		t.Errorf("error = %v, want it to wrap ErrUnknownCharacter", err)
	}
}

func TestLoad_PresetInputs(t *testing.T) {
	program, err := load("prog.txt", "a = b", false)
	if err != nil {
		t.Fatal(err)
	}
	inputs := varFlags{}
	if err := inputs.Set("b=9"); err != nil {
		t.Fatal(err)
	}

	vm := cpu.NewCPU()
	for name, v := range inputs {
		vm.Set(name, v)
	}
	vm.Load(program)
	if err := vm.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := vm.String(); got != "ACC=9 a=9 b=9" {
		t.Errorf("state = %q", got)
	}
}

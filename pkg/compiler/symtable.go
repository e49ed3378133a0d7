package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// Symbol summarises how one variable is used by the generated code.
type Symbol struct {
	Name      string
	Stores    int // MOV <name>, ACC
	Loads     int // LOAD <name>
	FirstLine int // source line of the first occurrence
}

// SymbolTable records every variable the code generator stores to or loads
// from. There is one flat scope: the language has no blocks.
type SymbolTable struct {
	syms map[string]*Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{syms: make(map[string]*Symbol)}
}

func (s *SymbolTable) get(name string, line int) *Symbol {
	sym, ok := s.syms[name]
	if !ok {
		sym = &Symbol{Name: name, FirstLine: line}
		s.syms[name] = sym
	}
	return sym
}

// Assign records a store into name.
func (s *SymbolTable) Assign(name string, line int) {
	s.get(name, line).Stores++
}

// Reference records a load of name.
func (s *SymbolTable) Reference(name string, line int) {
	s.get(name, line).Loads++
}

// Lookup returns the symbol for name, if the generator has seen it.
func (s *SymbolTable) Lookup(name string) (Symbol, bool) {
	sym, ok := s.syms[name]
	if !ok {
		return Symbol{}, false
	}
	return *sym, true
}

// Symbols returns a copy of every symbol, sorted by name.
func (s *SymbolTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(s.syms))
	for _, sym := range s.syms {
		out = append(out, *sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Inputs returns the names that are loaded but never stored, sorted. Their
// values must come from outside the program.
func (s *SymbolTable) Inputs() []string {
	var names []string
	for _, sym := range s.Symbols() {
		if sym.Stores == 0 {
			names = append(names, sym.Name)
		}
	}
	return names
}

func (s *SymbolTable) String() string {
	var sb strings.Builder
	if len(s.syms) == 0 {
		sb.WriteString("Symbols: (empty)\n")
		return sb.String()
	}
	sb.WriteString("Symbols:\n")
	for _, sym := range s.Symbols() {
		fmt.Fprintf(&sb, "  %-20s  stores: %d  loads: %d  (line %d)\n", sym.Name, sym.Stores, sym.Loads, sym.FirstLine)
	}
	return sb.String()
}
